package domain

import "fmt"

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeNotFound
	OutcomeDuplicateKey
	OutcomeInvalid
	OutcomeStoreError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeDuplicateKey:
		return "duplicate_key"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeStoreError:
		return "store_error"
	}
	return "unknown"
}

// Operation is a write applied to an entity table.
type Operation string

const (
	OpUpdate Operation = "update"
	OpInsert Operation = "new"
	OpDelete Operation = "delete"
)

// ParseOperation maps a form action onto an Operation.
func ParseOperation(s string) (Operation, bool) {
	switch Operation(s) {
	case OpUpdate, OpInsert, OpDelete:
		return Operation(s), true
	}
	return "", false
}

// Outcome is the result of a write. Only OutcomeSuccess changed the store.
type Outcome struct {
	Kind    OutcomeKind
	Op      Operation
	Count   int64
	ID      string
	Message string
	Err     error // set for OutcomeStoreError, never shown to the user
}

func (o Outcome) OK() bool { return o.Kind == OutcomeSuccess }

func Success(op Operation, id string, n int64) Outcome {
	var msg string
	switch op {
	case OpUpdate:
		msg = fmt.Sprintf("The number of updated registers is %d", n)
	case OpInsert:
		msg = fmt.Sprintf("The number of inserted registers is %d", n)
	case OpDelete:
		msg = fmt.Sprintf("Deleted rows:%d", n)
	}
	return Outcome{Kind: OutcomeSuccess, Op: op, Count: n, ID: id, Message: msg}
}

func NotFound(op Operation, label, id string) Outcome {
	msg := fmt.Sprintf("The %s id you have selected doesn't exist", label)
	if op == OpUpdate {
		msg = "The number of updated registers is 0 : " + msg
	}
	return Outcome{Kind: OutcomeNotFound, Op: op, ID: id, Message: msg}
}

func DuplicateKey(label, id string) Outcome {
	return Outcome{Kind: OutcomeDuplicateKey, Op: OpInsert, ID: id,
		Message: fmt.Sprintf("The %s id shall be unique.", label)}
}

func Invalid(op Operation, msg string) Outcome {
	return Outcome{Kind: OutcomeInvalid, Op: op, Message: msg}
}

func StoreError(op Operation, err error) Outcome {
	return Outcome{Kind: OutcomeStoreError, Op: op, Err: err,
		Message: "The database could not complete the operation. Please try again."}
}
