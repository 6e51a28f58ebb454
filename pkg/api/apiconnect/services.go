package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cashcrush/pkg/api"
)

// Package prefix of every procedure.
const packagePrefix = "/cashcrush.v1."

// Fully-qualified service names.
const (
	UserServiceName       = "cashcrush.v1.UserService"
	GroupServiceName      = "cashcrush.v1.GroupService"
	ExpenseServiceName    = "cashcrush.v1.ExpenseService"
	SettlementServiceName = "cashcrush.v1.SettlementService"
	DashboardServiceName  = "cashcrush.v1.DashboardService"
	InsightServiceName    = "cashcrush.v1.InsightService"
	ReminderServiceName   = "cashcrush.v1.ReminderService"
)

// Procedure paths.
const (
	UserServiceGetCurrentUserProcedure             = packagePrefix + "UserService/GetCurrentUser"
	UserServiceUpdateProfileProcedure              = packagePrefix + "UserService/UpdateProfile"
	UserServiceSearchUsersProcedure                = packagePrefix + "UserService/SearchUsers"
	UserServiceGetContactsProcedure                = packagePrefix + "UserService/GetContacts"
	GroupServiceCreateGroupProcedure               = packagePrefix + "GroupService/CreateGroup"
	GroupServiceGetGroupProcedure                  = packagePrefix + "GroupService/GetGroup"
	GroupServiceListGroupsProcedure                = packagePrefix + "GroupService/ListGroups"
	GroupServiceEditGroupProcedure                 = packagePrefix + "GroupService/EditGroup"
	GroupServiceJoinGroupProcedure                 = packagePrefix + "GroupService/JoinGroup"
	GroupServiceRemoveMemberProcedure              = packagePrefix + "GroupService/RemoveMember"
	GroupServiceDeleteGroupProcedure               = packagePrefix + "GroupService/DeleteGroup"
	ExpenseServicePreviewSplitProcedure            = packagePrefix + "ExpenseService/PreviewSplit"
	ExpenseServiceCreateExpenseProcedure           = packagePrefix + "ExpenseService/CreateExpense"
	ExpenseServiceDeleteExpenseProcedure           = packagePrefix + "ExpenseService/DeleteExpense"
	ExpenseServiceGetExpensesBetweenUsersProcedure = packagePrefix + "ExpenseService/GetExpensesBetweenUsers"
	ExpenseServiceListGroupExpensesProcedure       = packagePrefix + "ExpenseService/ListGroupExpenses"
	SettlementServiceCreateSettlementProcedure     = packagePrefix + "SettlementService/CreateSettlement"
	SettlementServiceGetSettlementDataProcedure    = packagePrefix + "SettlementService/GetSettlementData"
	DashboardServiceGetUserBalancesProcedure       = packagePrefix + "DashboardService/GetUserBalances"
	DashboardServiceGetMonthlySpendingProcedure    = packagePrefix + "DashboardService/GetMonthlySpending"
	DashboardServiceGetGroupNetsProcedure          = packagePrefix + "DashboardService/GetGroupNets"
	InsightServiceGetSpendingInsightsProcedure     = packagePrefix + "InsightService/GetSpendingInsights"
	ReminderServiceSendPaymentReminderProcedure    = packagePrefix + "ReminderService/SendPaymentReminder"
)

// route serves each procedure with its handler and 404s anything else under
// the service path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// UserServiceHandler is implemented by the server side of profiles and user lookup.
type UserServiceHandler interface {
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
	SearchUsers(context.Context, *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error)
	GetContacts(context.Context, *connect.Request[api.GetContactsRequest]) (*connect.Response[api.GetContactsResponse], error)
}

// NewUserServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + UserServiceName + "/", route(map[string]http.Handler{
		UserServiceGetCurrentUserProcedure: connect.NewUnaryHandler(UserServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
		UserServiceUpdateProfileProcedure:  connect.NewUnaryHandler(UserServiceUpdateProfileProcedure, svc.UpdateProfile, opts...),
		UserServiceSearchUsersProcedure:    connect.NewUnaryHandler(UserServiceSearchUsersProcedure, svc.SearchUsers, opts...),
		UserServiceGetContactsProcedure:    connect.NewUnaryHandler(UserServiceGetContactsProcedure, svc.GetContacts, opts...),
	})
}

// UserServiceClient is a client for profiles and user lookup.
type UserServiceClient struct {
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
	updateProfile  *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
	searchUsers    *connect.Client[api.SearchUsersRequest, api.SearchUsersResponse]
	getContacts    *connect.Client[api.GetContactsRequest, api.GetContactsResponse]
}

// NewUserServiceClient constructs a client for the service at baseURL (e.g. http://localhost:8080).
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &UserServiceClient{
		getCurrentUser: connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL+UserServiceGetCurrentUserProcedure, opts...),
		updateProfile:  connect.NewClient[api.UpdateProfileRequest, api.UpdateProfileResponse](httpClient, baseURL+UserServiceUpdateProfileProcedure, opts...),
		searchUsers:    connect.NewClient[api.SearchUsersRequest, api.SearchUsersResponse](httpClient, baseURL+UserServiceSearchUsersProcedure, opts...),
		getContacts:    connect.NewClient[api.GetContactsRequest, api.GetContactsResponse](httpClient, baseURL+UserServiceGetContactsProcedure, opts...),
	}
}

// GetCurrentUser calls UserService.GetCurrentUser.
func (c *UserServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// UpdateProfile calls UserService.UpdateProfile.
func (c *UserServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// SearchUsers calls UserService.SearchUsers.
func (c *UserServiceClient) SearchUsers(ctx context.Context, req *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error) {
	return c.searchUsers.CallUnary(ctx, req)
}

// GetContacts calls UserService.GetContacts.
func (c *UserServiceClient) GetContacts(ctx context.Context, req *connect.Request[api.GetContactsRequest]) (*connect.Response[api.GetContactsResponse], error) {
	return c.getContacts.CallUnary(ctx, req)
}

// GroupServiceHandler is implemented by the server side of group lifecycle and membership.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	EditGroup(context.Context, *connect.Request[api.EditGroupRequest]) (*connect.Response[api.EditGroupResponse], error)
	JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + GroupServiceName + "/", route(map[string]http.Handler{
		GroupServiceCreateGroupProcedure:  connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:     connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure:   connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceEditGroupProcedure:    connect.NewUnaryHandler(GroupServiceEditGroupProcedure, svc.EditGroup, opts...),
		GroupServiceJoinGroupProcedure:    connect.NewUnaryHandler(GroupServiceJoinGroupProcedure, svc.JoinGroup, opts...),
		GroupServiceRemoveMemberProcedure: connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		GroupServiceDeleteGroupProcedure:  connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
	})
}

// GroupServiceClient is a client for group lifecycle and membership.
type GroupServiceClient struct {
	createGroup  *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup     *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups   *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	editGroup    *connect.Client[api.EditGroupRequest, api.EditGroupResponse]
	joinGroup    *connect.Client[api.JoinGroupRequest, api.JoinGroupResponse]
	removeMember *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	deleteGroup  *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
}

// NewGroupServiceClient constructs a client for the service at baseURL (e.g. http://localhost:8080).
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:  connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:     connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:   connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		editGroup:    connect.NewClient[api.EditGroupRequest, api.EditGroupResponse](httpClient, baseURL+GroupServiceEditGroupProcedure, opts...),
		joinGroup:    connect.NewClient[api.JoinGroupRequest, api.JoinGroupResponse](httpClient, baseURL+GroupServiceJoinGroupProcedure, opts...),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		deleteGroup:  connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
	}
}

// CreateGroup calls GroupService.CreateGroup.
func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

// GetGroup calls GroupService.GetGroup.
func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

// ListGroups calls GroupService.ListGroups.
func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

// EditGroup calls GroupService.EditGroup.
func (c *GroupServiceClient) EditGroup(ctx context.Context, req *connect.Request[api.EditGroupRequest]) (*connect.Response[api.EditGroupResponse], error) {
	return c.editGroup.CallUnary(ctx, req)
}

// JoinGroup calls GroupService.JoinGroup.
func (c *GroupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

// RemoveMember calls GroupService.RemoveMember.
func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

// DeleteGroup calls GroupService.DeleteGroup.
func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// ExpenseServiceHandler is implemented by the server side of expenses and splits.
type ExpenseServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	GetExpensesBetweenUsers(context.Context, *connect.Request[api.GetExpensesBetweenUsersRequest]) (*connect.Response[api.GetExpensesBetweenUsersResponse], error)
	ListGroupExpenses(context.Context, *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ExpenseServiceName + "/", route(map[string]http.Handler{
		ExpenseServicePreviewSplitProcedure:            connect.NewUnaryHandler(ExpenseServicePreviewSplitProcedure, svc.PreviewSplit, opts...),
		ExpenseServiceCreateExpenseProcedure:           connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure:           connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceGetExpensesBetweenUsersProcedure: connect.NewUnaryHandler(ExpenseServiceGetExpensesBetweenUsersProcedure, svc.GetExpensesBetweenUsers, opts...),
		ExpenseServiceListGroupExpensesProcedure:       connect.NewUnaryHandler(ExpenseServiceListGroupExpensesProcedure, svc.ListGroupExpenses, opts...),
	})
}

// ExpenseServiceClient is a client for expenses and splits.
type ExpenseServiceClient struct {
	previewSplit            *connect.Client[api.PreviewSplitRequest, api.PreviewSplitResponse]
	createExpense           *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	deleteExpense           *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	getExpensesBetweenUsers *connect.Client[api.GetExpensesBetweenUsersRequest, api.GetExpensesBetweenUsersResponse]
	listGroupExpenses       *connect.Client[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse]
}

// NewExpenseServiceClient constructs a client for the service at baseURL (e.g. http://localhost:8080).
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		previewSplit:            connect.NewClient[api.PreviewSplitRequest, api.PreviewSplitResponse](httpClient, baseURL+ExpenseServicePreviewSplitProcedure, opts...),
		createExpense:           connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		deleteExpense:           connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		getExpensesBetweenUsers: connect.NewClient[api.GetExpensesBetweenUsersRequest, api.GetExpensesBetweenUsersResponse](httpClient, baseURL+ExpenseServiceGetExpensesBetweenUsersProcedure, opts...),
		listGroupExpenses:       connect.NewClient[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse](httpClient, baseURL+ExpenseServiceListGroupExpensesProcedure, opts...),
	}
}

// PreviewSplit calls ExpenseService.PreviewSplit.
func (c *ExpenseServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

// CreateExpense calls ExpenseService.CreateExpense.
func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

// DeleteExpense calls ExpenseService.DeleteExpense.
func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// GetExpensesBetweenUsers calls ExpenseService.GetExpensesBetweenUsers.
func (c *ExpenseServiceClient) GetExpensesBetweenUsers(ctx context.Context, req *connect.Request[api.GetExpensesBetweenUsersRequest]) (*connect.Response[api.GetExpensesBetweenUsersResponse], error) {
	return c.getExpensesBetweenUsers.CallUnary(ctx, req)
}

// ListGroupExpenses calls ExpenseService.ListGroupExpenses.
func (c *ExpenseServiceClient) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	return c.listGroupExpenses.CallUnary(ctx, req)
}

// SettlementServiceHandler is implemented by the server side of recording payments and reading balances.
type SettlementServiceHandler interface {
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	GetSettlementData(context.Context, *connect.Request[api.GetSettlementDataRequest]) (*connect.Response[api.GetSettlementDataResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SettlementServiceName + "/", route(map[string]http.Handler{
		SettlementServiceCreateSettlementProcedure:  connect.NewUnaryHandler(SettlementServiceCreateSettlementProcedure, svc.CreateSettlement, opts...),
		SettlementServiceGetSettlementDataProcedure: connect.NewUnaryHandler(SettlementServiceGetSettlementDataProcedure, svc.GetSettlementData, opts...),
	})
}

// SettlementServiceClient is a client for recording payments and reading balances.
type SettlementServiceClient struct {
	createSettlement  *connect.Client[api.CreateSettlementRequest, api.CreateSettlementResponse]
	getSettlementData *connect.Client[api.GetSettlementDataRequest, api.GetSettlementDataResponse]
}

// NewSettlementServiceClient constructs a client for the service at baseURL (e.g. http://localhost:8080).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SettlementServiceClient{
		createSettlement:  connect.NewClient[api.CreateSettlementRequest, api.CreateSettlementResponse](httpClient, baseURL+SettlementServiceCreateSettlementProcedure, opts...),
		getSettlementData: connect.NewClient[api.GetSettlementDataRequest, api.GetSettlementDataResponse](httpClient, baseURL+SettlementServiceGetSettlementDataProcedure, opts...),
	}
}

// CreateSettlement calls SettlementService.CreateSettlement.
func (c *SettlementServiceClient) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return c.createSettlement.CallUnary(ctx, req)
}

// GetSettlementData calls SettlementService.GetSettlementData.
func (c *SettlementServiceClient) GetSettlementData(ctx context.Context, req *connect.Request[api.GetSettlementDataRequest]) (*connect.Response[api.GetSettlementDataResponse], error) {
	return c.getSettlementData.CallUnary(ctx, req)
}

// DashboardServiceHandler is implemented by the server side of the caller's summaries.
type DashboardServiceHandler interface {
	GetUserBalances(context.Context, *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error)
	GetMonthlySpending(context.Context, *connect.Request[api.GetMonthlySpendingRequest]) (*connect.Response[api.GetMonthlySpendingResponse], error)
	GetGroupNets(context.Context, *connect.Request[api.GetGroupNetsRequest]) (*connect.Response[api.GetGroupNetsResponse], error)
}

// NewDashboardServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewDashboardServiceHandler(svc DashboardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + DashboardServiceName + "/", route(map[string]http.Handler{
		DashboardServiceGetUserBalancesProcedure:    connect.NewUnaryHandler(DashboardServiceGetUserBalancesProcedure, svc.GetUserBalances, opts...),
		DashboardServiceGetMonthlySpendingProcedure: connect.NewUnaryHandler(DashboardServiceGetMonthlySpendingProcedure, svc.GetMonthlySpending, opts...),
		DashboardServiceGetGroupNetsProcedure:       connect.NewUnaryHandler(DashboardServiceGetGroupNetsProcedure, svc.GetGroupNets, opts...),
	})
}

// DashboardServiceClient is a client for the caller's summaries.
type DashboardServiceClient struct {
	getUserBalances    *connect.Client[api.GetUserBalancesRequest, api.GetUserBalancesResponse]
	getMonthlySpending *connect.Client[api.GetMonthlySpendingRequest, api.GetMonthlySpendingResponse]
	getGroupNets       *connect.Client[api.GetGroupNetsRequest, api.GetGroupNetsResponse]
}

// NewDashboardServiceClient constructs a client for the service at baseURL (e.g. http://localhost:8080).
func NewDashboardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DashboardServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &DashboardServiceClient{
		getUserBalances:    connect.NewClient[api.GetUserBalancesRequest, api.GetUserBalancesResponse](httpClient, baseURL+DashboardServiceGetUserBalancesProcedure, opts...),
		getMonthlySpending: connect.NewClient[api.GetMonthlySpendingRequest, api.GetMonthlySpendingResponse](httpClient, baseURL+DashboardServiceGetMonthlySpendingProcedure, opts...),
		getGroupNets:       connect.NewClient[api.GetGroupNetsRequest, api.GetGroupNetsResponse](httpClient, baseURL+DashboardServiceGetGroupNetsProcedure, opts...),
	}
}

// GetUserBalances calls DashboardService.GetUserBalances.
func (c *DashboardServiceClient) GetUserBalances(ctx context.Context, req *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error) {
	return c.getUserBalances.CallUnary(ctx, req)
}

// GetMonthlySpending calls DashboardService.GetMonthlySpending.
func (c *DashboardServiceClient) GetMonthlySpending(ctx context.Context, req *connect.Request[api.GetMonthlySpendingRequest]) (*connect.Response[api.GetMonthlySpendingResponse], error) {
	return c.getMonthlySpending.CallUnary(ctx, req)
}

// GetGroupNets calls DashboardService.GetGroupNets.
func (c *DashboardServiceClient) GetGroupNets(ctx context.Context, req *connect.Request[api.GetGroupNetsRequest]) (*connect.Response[api.GetGroupNetsResponse], error) {
	return c.getGroupNets.CallUnary(ctx, req)
}

// InsightServiceHandler is implemented by the server side of AI spending analysis.
type InsightServiceHandler interface {
	GetSpendingInsights(context.Context, *connect.Request[api.GetSpendingInsightsRequest]) (*connect.Response[api.GetSpendingInsightsResponse], error)
}

// NewInsightServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewInsightServiceHandler(svc InsightServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + InsightServiceName + "/", route(map[string]http.Handler{
		InsightServiceGetSpendingInsightsProcedure: connect.NewUnaryHandler(InsightServiceGetSpendingInsightsProcedure, svc.GetSpendingInsights, opts...),
	})
}

// InsightServiceClient is a client for AI spending analysis.
type InsightServiceClient struct {
	getSpendingInsights *connect.Client[api.GetSpendingInsightsRequest, api.GetSpendingInsightsResponse]
}

// NewInsightServiceClient constructs a client for the service at baseURL (e.g. http://localhost:8080).
func NewInsightServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *InsightServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &InsightServiceClient{
		getSpendingInsights: connect.NewClient[api.GetSpendingInsightsRequest, api.GetSpendingInsightsResponse](httpClient, baseURL+InsightServiceGetSpendingInsightsProcedure, opts...),
	}
}

// GetSpendingInsights calls InsightService.GetSpendingInsights.
func (c *InsightServiceClient) GetSpendingInsights(ctx context.Context, req *connect.Request[api.GetSpendingInsightsRequest]) (*connect.Response[api.GetSpendingInsightsResponse], error) {
	return c.getSpendingInsights.CallUnary(ctx, req)
}

// ReminderServiceHandler is implemented by the server side of payment reminder emails.
type ReminderServiceHandler interface {
	SendPaymentReminder(context.Context, *connect.Request[api.SendPaymentReminderRequest]) (*connect.Response[api.SendPaymentReminderResponse], error)
}

// NewReminderServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewReminderServiceHandler(svc ReminderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ReminderServiceName + "/", route(map[string]http.Handler{
		ReminderServiceSendPaymentReminderProcedure: connect.NewUnaryHandler(ReminderServiceSendPaymentReminderProcedure, svc.SendPaymentReminder, opts...),
	})
}

// ReminderServiceClient is a client for payment reminder emails.
type ReminderServiceClient struct {
	sendPaymentReminder *connect.Client[api.SendPaymentReminderRequest, api.SendPaymentReminderResponse]
}

// NewReminderServiceClient constructs a client for the service at baseURL (e.g. http://localhost:8080).
func NewReminderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReminderServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ReminderServiceClient{
		sendPaymentReminder: connect.NewClient[api.SendPaymentReminderRequest, api.SendPaymentReminderResponse](httpClient, baseURL+ReminderServiceSendPaymentReminderProcedure, opts...),
	}
}

// SendPaymentReminder calls ReminderService.SendPaymentReminder.
func (c *ReminderServiceClient) SendPaymentReminder(ctx context.Context, req *connect.Request[api.SendPaymentReminderRequest]) (*connect.Response[api.SendPaymentReminderResponse], error) {
	return c.sendPaymentReminder.CallUnary(ctx, req)
}
