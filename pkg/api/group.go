package api

type Member struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Group struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerEmail string    `json:"ownerEmail"`
	Members    []*Member `json:"members"`
	CreatedAt  int64     `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name    string    `json:"name"`
	Members []*Member `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupId string    `json:"groupId"`
	Name    string    `json:"name"`
	Members []*Member `json:"members"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type ListMembersInExpensesRequest struct {
	GroupId string `json:"groupId"`
}

// ListMembersInExpensesResponse lists every name that appears as a payer or
// in a split set, including names no longer in the group.
type ListMembersInExpensesResponse struct {
	Names []string `json:"names"`
}
