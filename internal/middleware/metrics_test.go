package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitapp/internal/auth"
	"github.com/mmynk/splitapp/internal/metrics"
	"github.com/mmynk/splitapp/pkg/api"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New()
	jwtManager := auth.NewJWTManager("secret", time.Hour)

	_, handler := apiconnect.NewGroupServiceHandler(apiconnect.UnimplementedGroupServiceHandler{},
		connect.WithInterceptors(MetricsInterceptor(m), RequireAuth(jwtManager)))
	server := httptest.NewServer(handler)
	defer server.Close()

	client := apiconnect.NewGroupServiceClient(server.Client(), server.URL)
	_, err := client.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	require.Error(t, err)

	token, err := jwtManager.Generate("alice@example.com", "")
	require.NoError(t, err)
	req := connect.NewRequest(&api.ListGroupsRequest{})
	req.Header().Set("Authorization", "Bearer "+token)
	_, err = client.ListGroups(context.Background(), req)
	require.Error(t, err)

	procedure := apiconnect.GroupServiceListGroupsProcedure
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(procedure, "unauthenticated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(procedure, "unimplemented")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RPCDuration))
}
