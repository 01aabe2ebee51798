package handler

// Status blocks written verbatim before the body
const (
	StatusOK              = "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n"
	StatusNotFound        = "HTTP/1.1 404 NOT FOUND\r\n\r\n"
	StatusInternalError   = "HTTP/1.1 500 INTERNAL ERROR\r\n\r\n"
	StatusTooManyRequests = "HTTP/1.1 429 TOO MANY REQUESTS\r\n\r\n"
)

// Response bodies
const (
	BodyUserCreated  = "User created"
	BodyUserUpdated  = "User updated"
	BodyUserDeleted  = "User deleted"
	BodyInvalidJSON  = "Invalid JSON"
	BodyInvalidID    = "Invalid ID"
	BodyUserNotFound = "User not found"
	BodyInternal     = "Internal error"
	BodyNotFound     = "404 Not Found"
	BodyRateLimited  = "Rate limit exceeded"
)

// Response is a status block plus a body. Bytes is the exact wire form:
// no Content-Length and no connection headers.
type Response struct {
	Status string
	Body   string
}

// Bytes concatenates status and body
func (r Response) Bytes() []byte {
	return []byte(r.Status + r.Body)
}

func ok(body string) Response {
	return Response{Status: StatusOK, Body: body}
}

func notFound(body string) Response {
	return Response{Status: StatusNotFound, Body: body}
}

func internalError(body string) Response {
	return Response{Status: StatusInternalError, Body: body}
}

// RateLimited is returned instead of dispatching when a client is over its quota
func RateLimited() Response {
	return Response{Status: StatusTooManyRequests, Body: BodyRateLimited}
}
