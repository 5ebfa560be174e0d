package calculator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitapp/internal/models"
)

func members(names ...string) []models.Member {
	out := make([]models.Member, len(names))
	for i, n := range names {
		out[i] = models.Member{Name: n}
	}
	return out
}

func expense(amount string, paidBy string, splitWith ...string) models.Expense {
	return models.Expense{
		Amount:    decimal.RequireFromString(amount),
		PaidBy:    paidBy,
		SplitWith: splitWith,
	}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want, Money(got), msgAndArgs...)
}

var zeroSumTolerance = decimal.RequireFromString("0.000001")

func TestComputeBalances_ScenarioA(t *testing.T) {
	balances := ComputeBalances(
		members("Alice", "Bob", "Charlie"),
		[]models.Expense{expense("90", "Alice", "Alice", "Bob", "Charlie")},
	)

	require.Len(t, balances, 3)
	assertAmount(t, "60.00", balances["Alice"])
	assertAmount(t, "-30.00", balances["Bob"])
	assertAmount(t, "-30.00", balances["Charlie"])
}

func TestComputeBalances_ScenarioB(t *testing.T) {
	balances := ComputeBalances(
		members("Alice", "Bob"),
		[]models.Expense{
			expense("40", "Alice", "Alice", "Bob"),
			expense("20", "Bob", "Alice", "Bob"),
		},
	)

	assertAmount(t, "10.00", balances["Alice"])
	assertAmount(t, "-10.00", balances["Bob"])
}

func TestComputeBalances_UnknownMembers(t *testing.T) {
	// Dave left the group after the expense was recorded; Erin paid but was never a member.
	balances := ComputeBalances(
		members("Alice", "Bob"),
		[]models.Expense{
			expense("30", "Alice", "Alice", "Bob", "Dave"),
			expense("12", "Erin", "Bob", "Erin"),
		},
	)

	require.Len(t, balances, 4)
	assertAmount(t, "20.00", balances["Alice"])
	assertAmount(t, "-16.00", balances["Bob"])
	assertAmount(t, "-10.00", balances["Dave"])
	assertAmount(t, "6.00", balances["Erin"])
	assert.True(t, balances.Sum().IsZero())
}

func TestComputeBalances_EmptySplitGuard(t *testing.T) {
	balances := ComputeBalances(
		members("Alice", "Bob"),
		[]models.Expense{expense("25.50", "Alice")},
	)

	assertAmount(t, "25.50", balances["Alice"])
	assertAmount(t, "0.00", balances["Bob"])
}

func TestComputeBalances_NoExpenses(t *testing.T) {
	balances := ComputeBalances(members("Alice", "Bob"), nil)

	require.Len(t, balances, 2)
	for name, amount := range balances {
		assert.True(t, amount.IsZero(), "%s should be zero", name)
	}
}

func TestComputeBalances_ThirdsStayExact(t *testing.T) {
	// 100 / 3 repeated many times drifts with float64; decimals keep the sum at zero.
	var expenses []models.Expense
	for i := 0; i < 300; i++ {
		expenses = append(expenses, expense("100", "Alice", "Alice", "Bob", "Charlie"))
	}
	balances := ComputeBalances(members("Alice", "Bob", "Charlie"), expenses)

	assert.True(t, balances.Sum().Abs().LessThan(zeroSumTolerance), "sum = %s", balances.Sum())
	assertAmount(t, "20000.00", balances["Alice"])
	assertAmount(t, "-10000.00", balances["Bob"])
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank"}

	for run := 0; run < 200; run++ {
		expenses := randomExpenses(rng, names, 1+rng.Intn(25), false)
		balances := ComputeBalances(members(names[:3]...), expenses)

		sum := balances.Sum()
		require.True(t, sum.Abs().LessThan(zeroSumTolerance), "run %d: sum = %s", run, sum)
	}
}

func TestComputeBalances_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := []string{"Alice", "Bob", "Charlie", "Diana"}
	expenses := randomExpenses(rng, names, 20, false)

	first := ComputeBalances(members(names...), expenses)
	second := ComputeBalances(members(names...), expenses)

	require.Len(t, second, len(first))
	for name, amount := range first {
		assert.True(t, amount.Equal(second[name]), "%s: %s != %s", name, amount, second[name])
	}
}

func TestOrderedBalances(t *testing.T) {
	group := members("Charlie", "Alice")
	balances := ComputeBalances(group, []models.Expense{
		expense("10", "Zed", "Alice", "Bob"),
	})

	ordered := OrderedBalances(group, balances)

	require.Len(t, ordered, 4)
	assert.Equal(t, []string{"Charlie", "Alice", "Bob", "Zed"}, []string{
		ordered[0].Name, ordered[1].Name, ordered[2].Name, ordered[3].Name,
	})
	assertAmount(t, "-5.00", ordered[1].Amount)
	assertAmount(t, "10.00", ordered[3].Amount)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(members("Alice", "Bob", "Charlie"), []models.Expense{
		expense("40", "Alice", "Alice", "Bob"),
		expense("20", "Bob", "Alice", "Bob"),
	})

	assertAmount(t, "60.00", stats.Total)
	assert.Equal(t, 2, stats.ExpenseCount)
	assertAmount(t, "20.00", stats.AveragePerPerson)

	empty := ComputeStats(nil, nil)
	assert.True(t, empty.AveragePerPerson.IsZero())
}

// randomExpenses builds cent-valued expenses. When divisible is set every
// amount splits into whole cents so balances are exact.
func randomExpenses(rng *rand.Rand, names []string, n int, divisible bool) []models.Expense {
	expenses := make([]models.Expense, 0, n)
	for i := 0; i < n; i++ {
		perm := rng.Perm(len(names))
		split := make([]string, 1+rng.Intn(len(names)))
		for j := range split {
			split[j] = names[perm[j]]
		}
		cents := int64(1 + rng.Intn(50000))
		if divisible {
			cents *= int64(len(split))
		}
		expenses = append(expenses, models.Expense{
			Description: fmt.Sprintf("expense %d", i),
			Amount:      decimal.New(cents, -2),
			PaidBy:      names[rng.Intn(len(names))],
			SplitWith:   split,
		})
	}
	return expenses
}
