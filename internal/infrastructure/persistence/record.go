package persistence

// Record is the contract every stored entity satisfies. T is the concrete
// (pointer) entity type so that Clone can return it without casts.
//
// The version is owned by the store: it is set to 1 on insert and incremented
// on every successful update. A save whose version does not match the stored
// one fails with a CONFLICT error, which the TransactionRunner retries.
type Record[T any, I comparable] interface {
	GetID() I
	SetID(I)
	GetVersion() int64
	SetVersion(int64)
	Clone() T
}
