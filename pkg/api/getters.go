package api

// GetGroupId accessors let interceptors read the target group from any
// group-scoped request. They are nil-safe like generated message getters.

func (x *GetGroupRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *UpdateGroupRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *DeleteGroupRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *ListMembersInExpensesRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *CreateExpenseRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *ListExpensesRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *GetGroupBalancesRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *ConfirmReceiptRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *PreviewReminderRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}

func (x *SendReminderRequest) GetGroupId() string {
	if x == nil {
		return ""
	}
	return x.GroupId
}
