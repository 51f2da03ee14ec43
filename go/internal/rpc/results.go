package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const ResultServiceName = "meshiroyale.v1.ResultService"

const (
	ResultServiceSubmitResultProcedure   = "/meshiroyale.v1.ResultService/SubmitResult"
	ResultServiceListResultsProcedure    = "/meshiroyale.v1.ResultService/ListResults"
	ResultServiceGetLeaderboardProcedure = "/meshiroyale.v1.ResultService/GetLeaderboard"
)

type ResultServiceHandler interface {
	SubmitResult(context.Context, *connect.Request[SubmitResultRequest]) (*connect.Response[SubmitResultResponse], error)
	ListResults(context.Context, *connect.Request[ListResultsRequest]) (*connect.Response[ListResultsResponse], error)
	GetLeaderboard(context.Context, *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error)
}

func NewResultServiceHandler(svc ResultServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	submit := connect.NewUnaryHandler(ResultServiceSubmitResultProcedure, svc.SubmitResult, opts...)
	list := connect.NewUnaryHandler(ResultServiceListResultsProcedure, svc.ListResults, opts...)
	leaderboard := connect.NewUnaryHandler(ResultServiceGetLeaderboardProcedure, svc.GetLeaderboard, opts...)

	return "/" + ResultServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ResultServiceSubmitResultProcedure:
			submit.ServeHTTP(w, r)
		case ResultServiceListResultsProcedure:
			list.ServeHTTP(w, r)
		case ResultServiceGetLeaderboardProcedure:
			leaderboard.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

type ResultServiceClient interface {
	SubmitResult(context.Context, *connect.Request[SubmitResultRequest]) (*connect.Response[SubmitResultResponse], error)
	ListResults(context.Context, *connect.Request[ListResultsRequest]) (*connect.Response[ListResultsResponse], error)
	GetLeaderboard(context.Context, *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error)
}

func NewResultServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ResultServiceClient {
	opts = clientOptions(opts)
	return &resultServiceClient{
		submit:      connect.NewClient[SubmitResultRequest, SubmitResultResponse](httpClient, baseURL+ResultServiceSubmitResultProcedure, opts...),
		list:        connect.NewClient[ListResultsRequest, ListResultsResponse](httpClient, baseURL+ResultServiceListResultsProcedure, opts...),
		leaderboard: connect.NewClient[GetLeaderboardRequest, GetLeaderboardResponse](httpClient, baseURL+ResultServiceGetLeaderboardProcedure, opts...),
	}
}

type resultServiceClient struct {
	submit      *connect.Client[SubmitResultRequest, SubmitResultResponse]
	list        *connect.Client[ListResultsRequest, ListResultsResponse]
	leaderboard *connect.Client[GetLeaderboardRequest, GetLeaderboardResponse]
}

func (c *resultServiceClient) SubmitResult(ctx context.Context, req *connect.Request[SubmitResultRequest]) (*connect.Response[SubmitResultResponse], error) {
	return c.submit.CallUnary(ctx, req)
}

func (c *resultServiceClient) ListResults(ctx context.Context, req *connect.Request[ListResultsRequest]) (*connect.Response[ListResultsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *resultServiceClient) GetLeaderboard(ctx context.Context, req *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error) {
	return c.leaderboard.CallUnary(ctx, req)
}
