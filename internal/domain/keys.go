package domain

type CtxKey string

const (
	KeyOwnerID   CtxKey = "OwnerID"
	KeyUserEmail CtxKey = "Email"
	KeyRequestID CtxKey = "RequestID"
)
