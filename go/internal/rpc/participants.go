package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const ParticipantServiceName = "meshiroyale.v1.ParticipantService"

const (
	ParticipantServiceCreateParticipantProcedure = "/meshiroyale.v1.ParticipantService/CreateParticipant"
	ParticipantServiceGetParticipantProcedure    = "/meshiroyale.v1.ParticipantService/GetParticipant"
	ParticipantServiceUpdateParticipantProcedure = "/meshiroyale.v1.ParticipantService/UpdateParticipant"
	ParticipantServiceDeleteParticipantProcedure = "/meshiroyale.v1.ParticipantService/DeleteParticipant"
)

type ParticipantServiceHandler interface {
	CreateParticipant(context.Context, *connect.Request[CreateParticipantRequest]) (*connect.Response[CreateParticipantResponse], error)
	GetParticipant(context.Context, *connect.Request[GetParticipantRequest]) (*connect.Response[GetParticipantResponse], error)
	UpdateParticipant(context.Context, *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error)
	DeleteParticipant(context.Context, *connect.Request[DeleteParticipantRequest]) (*connect.Response[DeleteParticipantResponse], error)
}

func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	create := connect.NewUnaryHandler(ParticipantServiceCreateParticipantProcedure, svc.CreateParticipant, opts...)
	get := connect.NewUnaryHandler(ParticipantServiceGetParticipantProcedure, svc.GetParticipant, opts...)
	update := connect.NewUnaryHandler(ParticipantServiceUpdateParticipantProcedure, svc.UpdateParticipant, opts...)
	del := connect.NewUnaryHandler(ParticipantServiceDeleteParticipantProcedure, svc.DeleteParticipant, opts...)

	return "/" + ParticipantServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ParticipantServiceCreateParticipantProcedure:
			create.ServeHTTP(w, r)
		case ParticipantServiceGetParticipantProcedure:
			get.ServeHTTP(w, r)
		case ParticipantServiceUpdateParticipantProcedure:
			update.ServeHTTP(w, r)
		case ParticipantServiceDeleteParticipantProcedure:
			del.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

type ParticipantServiceClient interface {
	CreateParticipant(context.Context, *connect.Request[CreateParticipantRequest]) (*connect.Response[CreateParticipantResponse], error)
	GetParticipant(context.Context, *connect.Request[GetParticipantRequest]) (*connect.Response[GetParticipantResponse], error)
	UpdateParticipant(context.Context, *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error)
	DeleteParticipant(context.Context, *connect.Request[DeleteParticipantRequest]) (*connect.Response[DeleteParticipantResponse], error)
}

func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ParticipantServiceClient {
	opts = clientOptions(opts)
	return &participantServiceClient{
		create: connect.NewClient[CreateParticipantRequest, CreateParticipantResponse](httpClient, baseURL+ParticipantServiceCreateParticipantProcedure, opts...),
		get:    connect.NewClient[GetParticipantRequest, GetParticipantResponse](httpClient, baseURL+ParticipantServiceGetParticipantProcedure, opts...),
		update: connect.NewClient[UpdateParticipantRequest, UpdateParticipantResponse](httpClient, baseURL+ParticipantServiceUpdateParticipantProcedure, opts...),
		del:    connect.NewClient[DeleteParticipantRequest, DeleteParticipantResponse](httpClient, baseURL+ParticipantServiceDeleteParticipantProcedure, opts...),
	}
}

type participantServiceClient struct {
	create *connect.Client[CreateParticipantRequest, CreateParticipantResponse]
	get    *connect.Client[GetParticipantRequest, GetParticipantResponse]
	update *connect.Client[UpdateParticipantRequest, UpdateParticipantResponse]
	del    *connect.Client[DeleteParticipantRequest, DeleteParticipantResponse]
}

func (c *participantServiceClient) CreateParticipant(ctx context.Context, req *connect.Request[CreateParticipantRequest]) (*connect.Response[CreateParticipantResponse], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *participantServiceClient) GetParticipant(ctx context.Context, req *connect.Request[GetParticipantRequest]) (*connect.Response[GetParticipantResponse], error) {
	return c.get.CallUnary(ctx, req)
}

func (c *participantServiceClient) UpdateParticipant(ctx context.Context, req *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *participantServiceClient) DeleteParticipant(ctx context.Context, req *connect.Request[DeleteParticipantRequest]) (*connect.Response[DeleteParticipantResponse], error) {
	return c.del.CallUnary(ctx, req)
}
