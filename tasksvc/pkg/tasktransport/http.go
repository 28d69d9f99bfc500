package tasktransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authservice"
	"github.com/ichigozero/todokit/backend/authsvc/pkg/authtransport"
	"github.com/ichigozero/todokit/backend/tasksvc"
	"github.com/ichigozero/todokit/backend/tasksvc/pkg/taskendpoint"
)

// NewHTTPHandler mounts the owner-scoped task routes. Every route requires a
// verified bearer token; the {user_id} path segment is validated against the
// token identity downstream, never trusted on its own.
func NewHTTPHandler(endpoints taskendpoint.Set, tokenizer authservice.Tokenizer, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(errorEncoder),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		httptransport.ServerBefore(kitjwt.HTTPToContext()),
	}

	authenticate := authtransport.NewAuthenticator(tokenizer)

	var createTaskEndpoint endpoint.Endpoint
	{
		createTaskEndpoint = endpoints.CreateTaskEndpoint
		createTaskEndpoint = authenticate(createTaskEndpoint)
	}

	createTaskHandler := httptransport.NewServer(
		createTaskEndpoint,
		decodeHTTPCreateTaskRequest,
		encodeHTTPGenericResponse,
		options...,
	)

	var tasksEndpoint endpoint.Endpoint
	{
		tasksEndpoint = endpoints.TasksEndpoint
		tasksEndpoint = authenticate(tasksEndpoint)
	}

	tasksHandler := httptransport.NewServer(
		tasksEndpoint,
		decodeHTTPTasksRequest,
		encodeHTTPGenericResponse,
		options...,
	)

	var taskEndpoint endpoint.Endpoint
	{
		taskEndpoint = endpoints.TaskEndpoint
		taskEndpoint = authenticate(taskEndpoint)
	}

	taskHandler := httptransport.NewServer(
		taskEndpoint,
		decodeHTTPTaskRequest,
		encodeHTTPGenericResponse,
		options...,
	)

	var updateTaskEndpoint endpoint.Endpoint
	{
		updateTaskEndpoint = endpoints.UpdateTaskEndpoint
		updateTaskEndpoint = authenticate(updateTaskEndpoint)
	}

	updateTaskHandler := httptransport.NewServer(
		updateTaskEndpoint,
		decodeHTTPUpdateTaskRequest,
		encodeHTTPGenericResponse,
		options...,
	)

	var deleteTaskEndpoint endpoint.Endpoint
	{
		deleteTaskEndpoint = endpoints.DeleteTaskEndpoint
		deleteTaskEndpoint = authenticate(deleteTaskEndpoint)
	}

	deleteTaskHandler := httptransport.NewServer(
		deleteTaskEndpoint,
		decodeHTTPDeleteTaskRequest,
		encodeHTTPGenericResponse,
		options...,
	)

	var completeTaskEndpoint endpoint.Endpoint
	{
		completeTaskEndpoint = endpoints.CompleteTaskEndpoint
		completeTaskEndpoint = authenticate(completeTaskEndpoint)
	}

	completeTaskHandler := httptransport.NewServer(
		completeTaskEndpoint,
		decodeHTTPCompleteTaskRequest,
		encodeHTTPGenericResponse,
		options...,
	)

	r := mux.NewRouter()

	r.Methods("GET").Path("/api/{user_id}/tasks").Handler(tasksHandler)
	r.Methods("POST").Path("/api/{user_id}/tasks").Handler(createTaskHandler)
	r.Methods("GET").Path("/api/{user_id}/tasks/{task_id}").Handler(taskHandler)
	r.Methods("PUT").Path("/api/{user_id}/tasks/{task_id}").Handler(updateTaskHandler)
	r.Methods("DELETE").Path("/api/{user_id}/tasks/{task_id}").Handler(deleteTaskHandler)
	r.Methods("PATCH").Path("/api/{user_id}/tasks/{task_id}/complete").Handler(completeTaskHandler)

	return r
}

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	code := err2code(err)
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorWrapper{Error: err.Error()})
}

type errorWrapper struct {
	Error string `json:"error"`
}

func err2code(err error) int {
	var fieldErr *authsvc.FieldError
	if errors.As(err, &fieldErr) {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, authsvc.ErrInvalidToken),
		errors.Is(err, authsvc.ErrTokenContextMissing),
		errors.Is(err, authsvc.ErrIdentityContextMissing):
		return http.StatusUnauthorized
	case errors.Is(err, authsvc.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, tasksvc.ErrTaskNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func pathID(r *http.Request, key string) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 64)
	if err != nil {
		return 0, &authsvc.FieldError{Field: key, Reason: "must be a positive integer"}
	}
	return id, nil
}

func decodeHTTPCreateTaskRequest(_ context.Context, r *http.Request) (interface{}, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return nil, err
	}

	var req taskendpoint.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &authsvc.FieldError{Field: "body", Reason: "must be valid JSON"}
	}
	req.UserID = userID

	return req, nil
}

func decodeHTTPTasksRequest(_ context.Context, r *http.Request) (interface{}, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return nil, err
	}

	return taskendpoint.TasksRequest{UserID: userID}, nil
}

func decodeHTTPTaskRequest(_ context.Context, r *http.Request) (interface{}, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return nil, err
	}
	taskID, err := pathID(r, "task_id")
	if err != nil {
		return nil, err
	}

	return taskendpoint.TaskRequest{UserID: userID, TaskID: taskID}, nil
}

func decodeHTTPUpdateTaskRequest(_ context.Context, r *http.Request) (interface{}, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return nil, err
	}
	taskID, err := pathID(r, "task_id")
	if err != nil {
		return nil, err
	}

	var req taskendpoint.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &authsvc.FieldError{Field: "body", Reason: "must be valid JSON"}
	}
	req.UserID = userID
	req.TaskID = taskID

	return req, nil
}

func decodeHTTPDeleteTaskRequest(_ context.Context, r *http.Request) (interface{}, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return nil, err
	}
	taskID, err := pathID(r, "task_id")
	if err != nil {
		return nil, err
	}

	return taskendpoint.DeleteTaskRequest{UserID: userID, TaskID: taskID}, nil
}

func decodeHTTPCompleteTaskRequest(_ context.Context, r *http.Request) (interface{}, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return nil, err
	}
	taskID, err := pathID(r, "task_id")
	if err != nil {
		return nil, err
	}

	var req taskendpoint.CompleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &authsvc.FieldError{Field: "body", Reason: "must be valid JSON"}
	}
	req.UserID = userID
	req.TaskID = taskID

	return req, nil
}

type statusCoder interface {
	StatusCode() int
}

func encodeHTTPGenericResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		errorEncoder(ctx, f.Failed(), w)
		return nil
	}

	code := http.StatusOK
	if sc, ok := response.(statusCoder); ok {
		code = sc.StatusCode()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if code == http.StatusNoContent {
		return nil
	}
	return json.NewEncoder(w).Encode(response)
}
