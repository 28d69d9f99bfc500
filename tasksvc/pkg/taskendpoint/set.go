package taskendpoint

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/log"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/ichigozero/todokit/backend/tasksvc"
	"github.com/ichigozero/todokit/backend/tasksvc/pkg/taskservice"
)

type Set struct {
	CreateTaskEndpoint   endpoint.Endpoint
	TasksEndpoint        endpoint.Endpoint
	TaskEndpoint         endpoint.Endpoint
	UpdateTaskEndpoint   endpoint.Endpoint
	DeleteTaskEndpoint   endpoint.Endpoint
	CompleteTaskEndpoint endpoint.Endpoint
}

func New(svc taskservice.Service, logger log.Logger) Set {
	var createTaskEndpoint endpoint.Endpoint
	{
		createTaskEndpoint = MakeCreateTaskEndpoint(svc)
		createTaskEndpoint = LoggingMiddleware(log.With(logger, "method", "CreateTask"))(createTaskEndpoint)
	}

	var tasksEndpoint endpoint.Endpoint
	{
		tasksEndpoint = MakeTasksEndpoint(svc)
		tasksEndpoint = LoggingMiddleware(log.With(logger, "method", "Tasks"))(tasksEndpoint)
	}

	var taskEndpoint endpoint.Endpoint
	{
		taskEndpoint = MakeTaskEndpoint(svc)
		taskEndpoint = LoggingMiddleware(log.With(logger, "method", "Task"))(taskEndpoint)
	}

	var updateTaskEndpoint endpoint.Endpoint
	{
		updateTaskEndpoint = MakeUpdateTaskEndpoint(svc)
		updateTaskEndpoint = LoggingMiddleware(log.With(logger, "method", "UpdateTask"))(updateTaskEndpoint)
	}

	var deleteTaskEndpoint endpoint.Endpoint
	{
		deleteTaskEndpoint = MakeDeleteTaskEndpoint(svc)
		deleteTaskEndpoint = LoggingMiddleware(log.With(logger, "method", "DeleteTask"))(deleteTaskEndpoint)
	}

	var completeTaskEndpoint endpoint.Endpoint
	{
		completeTaskEndpoint = MakeCompleteTaskEndpoint(svc)
		completeTaskEndpoint = LoggingMiddleware(log.With(logger, "method", "CompleteTask"))(completeTaskEndpoint)
	}

	return Set{
		CreateTaskEndpoint:   createTaskEndpoint,
		TasksEndpoint:        tasksEndpoint,
		TaskEndpoint:         taskEndpoint,
		UpdateTaskEndpoint:   updateTaskEndpoint,
		DeleteTaskEndpoint:   deleteTaskEndpoint,
		CompleteTaskEndpoint: completeTaskEndpoint,
	}
}

func MakeCreateTaskEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		identity, err := authsvc.IdentityFromContext(ctx)
		if err != nil {
			return CreateTaskResponse{Err: err}, nil
		}

		req := request.(CreateTaskRequest)
		t, err := s.CreateTask(ctx, identity, req.UserID, req.Title, req.Description)
		return CreateTaskResponse{Task: t, Err: err}, nil
	}
}

func MakeTasksEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		identity, err := authsvc.IdentityFromContext(ctx)
		if err != nil {
			return TasksResponse{Err: err}, nil
		}

		req := request.(TasksRequest)
		t, err := s.Tasks(ctx, identity, req.UserID)
		return TasksResponse{Tasks: t, Err: err}, nil
	}
}

func MakeTaskEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		identity, err := authsvc.IdentityFromContext(ctx)
		if err != nil {
			return TaskResponse{Err: err}, nil
		}

		req := request.(TaskRequest)
		t, err := s.Task(ctx, identity, req.UserID, req.TaskID)
		return TaskResponse{Task: t, Err: err}, nil
	}
}

func MakeUpdateTaskEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		identity, err := authsvc.IdentityFromContext(ctx)
		if err != nil {
			return UpdateTaskResponse{Err: err}, nil
		}

		req := request.(UpdateTaskRequest)
		patch := tasksvc.TaskPatch{Title: req.Title, Description: req.Description}
		t, err := s.UpdateTask(ctx, identity, req.UserID, req.TaskID, patch)
		return UpdateTaskResponse{Task: t, Err: err}, nil
	}
}

func MakeDeleteTaskEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		identity, err := authsvc.IdentityFromContext(ctx)
		if err != nil {
			return DeleteTaskResponse{Err: err}, nil
		}

		req := request.(DeleteTaskRequest)
		err = s.DeleteTask(ctx, identity, req.UserID, req.TaskID)
		return DeleteTaskResponse{Err: err}, nil
	}
}

func MakeCompleteTaskEndpoint(s taskservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		identity, err := authsvc.IdentityFromContext(ctx)
		if err != nil {
			return CompleteTaskResponse{Err: err}, nil
		}

		req := request.(CompleteTaskRequest)
		t, err := s.CompleteTask(ctx, identity, req.UserID, req.TaskID, req.IsCompleted)
		return CompleteTaskResponse{Task: t, Err: err}, nil
	}
}

var (
	_ endpoint.Failer = CreateTaskResponse{}
	_ endpoint.Failer = TasksResponse{}
	_ endpoint.Failer = TaskResponse{}
	_ endpoint.Failer = UpdateTaskResponse{}
	_ endpoint.Failer = DeleteTaskResponse{}
	_ endpoint.Failer = CompleteTaskResponse{}
)

// UserID and TaskID on the request types come from the URL path, decoded by
// the transport; the endpoints validate them against the token identity.

type CreateTaskRequest struct {
	UserID      uint64 `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreateTaskResponse struct {
	Task tasksvc.Task `json:"task"`
	Err  error        `json:"-"`
}

func (r CreateTaskResponse) Failed() error                { return r.Err }
func (r CreateTaskResponse) StatusCode() int              { return http.StatusCreated }
func (r CreateTaskResponse) MarshalJSON() ([]byte, error) { return json.Marshal(r.Task) }

type TasksRequest struct {
	UserID uint64
}

type TasksResponse struct {
	Tasks []tasksvc.Task `json:"tasks"`
	Err   error          `json:"-"`
}

func (r TasksResponse) Failed() error                { return r.Err }
func (r TasksResponse) MarshalJSON() ([]byte, error) { return json.Marshal(r.Tasks) }

type TaskRequest struct {
	UserID uint64
	TaskID uint64
}

type TaskResponse struct {
	Task tasksvc.Task `json:"task"`
	Err  error        `json:"-"`
}

func (r TaskResponse) Failed() error                { return r.Err }
func (r TaskResponse) MarshalJSON() ([]byte, error) { return json.Marshal(r.Task) }

type UpdateTaskRequest struct {
	UserID      uint64  `json:"-"`
	TaskID      uint64  `json:"-"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type UpdateTaskResponse struct {
	Task tasksvc.Task `json:"task"`
	Err  error        `json:"-"`
}

func (r UpdateTaskResponse) Failed() error                { return r.Err }
func (r UpdateTaskResponse) MarshalJSON() ([]byte, error) { return json.Marshal(r.Task) }

type DeleteTaskRequest struct {
	UserID uint64
	TaskID uint64
}

type DeleteTaskResponse struct {
	Err error `json:"-"`
}

func (r DeleteTaskResponse) Failed() error   { return r.Err }
func (r DeleteTaskResponse) StatusCode() int { return http.StatusNoContent }

type CompleteTaskRequest struct {
	UserID      uint64 `json:"-"`
	TaskID      uint64 `json:"-"`
	IsCompleted bool   `json:"is_completed"`
}

type CompleteTaskResponse struct {
	Task tasksvc.Task `json:"task"`
	Err  error        `json:"-"`
}

func (r CompleteTaskResponse) Failed() error                { return r.Err }
func (r CompleteTaskResponse) MarshalJSON() ([]byte, error) { return json.Marshal(r.Task) }
