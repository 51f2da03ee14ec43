package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const RoomServiceName = "meshiroyale.v1.RoomService"

const (
	RoomServiceCreateRoomProcedure = "/meshiroyale.v1.RoomService/CreateRoom"
	RoomServiceGetRoomProcedure    = "/meshiroyale.v1.RoomService/GetRoom"
	RoomServiceListRoomsProcedure  = "/meshiroyale.v1.RoomService/ListRooms"
	RoomServiceJoinRoomProcedure   = "/meshiroyale.v1.RoomService/JoinRoom"
	RoomServiceLeaveRoomProcedure  = "/meshiroyale.v1.RoomService/LeaveRoom"
	RoomServiceSelectGameProcedure = "/meshiroyale.v1.RoomService/SelectGame"
)

type RoomServiceHandler interface {
	CreateRoom(context.Context, *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error)
	GetRoom(context.Context, *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error)
	ListRooms(context.Context, *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error)
	JoinRoom(context.Context, *connect.Request[JoinRoomRequest]) (*connect.Response[JoinRoomResponse], error)
	LeaveRoom(context.Context, *connect.Request[LeaveRoomRequest]) (*connect.Response[LeaveRoomResponse], error)
	SelectGame(context.Context, *connect.Request[SelectGameRequest]) (*connect.Response[SelectGameResponse], error)
}

// NewRoomServiceHandler builds an HTTP handler for the room service. It
// returns the path prefix to mount it on.
func NewRoomServiceHandler(svc RoomServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createRoom := connect.NewUnaryHandler(RoomServiceCreateRoomProcedure, svc.CreateRoom, opts...)
	getRoom := connect.NewUnaryHandler(RoomServiceGetRoomProcedure, svc.GetRoom, opts...)
	listRooms := connect.NewUnaryHandler(RoomServiceListRoomsProcedure, svc.ListRooms, opts...)
	joinRoom := connect.NewUnaryHandler(RoomServiceJoinRoomProcedure, svc.JoinRoom, opts...)
	leaveRoom := connect.NewUnaryHandler(RoomServiceLeaveRoomProcedure, svc.LeaveRoom, opts...)
	selectGame := connect.NewUnaryHandler(RoomServiceSelectGameProcedure, svc.SelectGame, opts...)

	return "/" + RoomServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RoomServiceCreateRoomProcedure:
			createRoom.ServeHTTP(w, r)
		case RoomServiceGetRoomProcedure:
			getRoom.ServeHTTP(w, r)
		case RoomServiceListRoomsProcedure:
			listRooms.ServeHTTP(w, r)
		case RoomServiceJoinRoomProcedure:
			joinRoom.ServeHTTP(w, r)
		case RoomServiceLeaveRoomProcedure:
			leaveRoom.ServeHTTP(w, r)
		case RoomServiceSelectGameProcedure:
			selectGame.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

type RoomServiceClient interface {
	CreateRoom(context.Context, *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error)
	GetRoom(context.Context, *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error)
	ListRooms(context.Context, *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error)
	JoinRoom(context.Context, *connect.Request[JoinRoomRequest]) (*connect.Response[JoinRoomResponse], error)
	LeaveRoom(context.Context, *connect.Request[LeaveRoomRequest]) (*connect.Response[LeaveRoomResponse], error)
	SelectGame(context.Context, *connect.Request[SelectGameRequest]) (*connect.Response[SelectGameResponse], error)
}

func NewRoomServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RoomServiceClient {
	opts = clientOptions(opts)
	return &roomServiceClient{
		createRoom: connect.NewClient[CreateRoomRequest, CreateRoomResponse](httpClient, baseURL+RoomServiceCreateRoomProcedure, opts...),
		getRoom:    connect.NewClient[GetRoomRequest, GetRoomResponse](httpClient, baseURL+RoomServiceGetRoomProcedure, opts...),
		listRooms:  connect.NewClient[ListRoomsRequest, ListRoomsResponse](httpClient, baseURL+RoomServiceListRoomsProcedure, opts...),
		joinRoom:   connect.NewClient[JoinRoomRequest, JoinRoomResponse](httpClient, baseURL+RoomServiceJoinRoomProcedure, opts...),
		leaveRoom:  connect.NewClient[LeaveRoomRequest, LeaveRoomResponse](httpClient, baseURL+RoomServiceLeaveRoomProcedure, opts...),
		selectGame: connect.NewClient[SelectGameRequest, SelectGameResponse](httpClient, baseURL+RoomServiceSelectGameProcedure, opts...),
	}
}

type roomServiceClient struct {
	createRoom *connect.Client[CreateRoomRequest, CreateRoomResponse]
	getRoom    *connect.Client[GetRoomRequest, GetRoomResponse]
	listRooms  *connect.Client[ListRoomsRequest, ListRoomsResponse]
	joinRoom   *connect.Client[JoinRoomRequest, JoinRoomResponse]
	leaveRoom  *connect.Client[LeaveRoomRequest, LeaveRoomResponse]
	selectGame *connect.Client[SelectGameRequest, SelectGameResponse]
}

func (c *roomServiceClient) CreateRoom(ctx context.Context, req *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error) {
	return c.createRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) GetRoom(ctx context.Context, req *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error) {
	return c.getRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) ListRooms(ctx context.Context, req *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error) {
	return c.listRooms.CallUnary(ctx, req)
}

func (c *roomServiceClient) JoinRoom(ctx context.Context, req *connect.Request[JoinRoomRequest]) (*connect.Response[JoinRoomResponse], error) {
	return c.joinRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) LeaveRoom(ctx context.Context, req *connect.Request[LeaveRoomRequest]) (*connect.Response[LeaveRoomResponse], error) {
	return c.leaveRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) SelectGame(ctx context.Context, req *connect.Request[SelectGameRequest]) (*connect.Response[SelectGameResponse], error) {
	return c.selectGame.CallUnary(ctx, req)
}
