//-----------------------------------------------------------------------------
/*

Kernel Errors

KernelError is the structured error type this façade returns for
handle-level failures (an unknown or stale KernelSolidHandle); failures
from the underlying ops call are returned as-is so callers can still
switch on ops.OperationError's Kind. The NothingToExport kind is declared
but no façade method returns it.

*/
//-----------------------------------------------------------------------------

package kernel

// KernelErrorKind distinguishes the ways a façade call can fail before
// ever reaching an ops operation.
type KernelErrorKind int

const (
	// UnknownHandle: a KernelSolidHandle does not belong to this Kernel
	// (e.g. it was produced by a rebuild that has since been discarded).
	UnknownHandle KernelErrorKind = iota
	// NothingToExport: export_step found no solid with a Main output.
	NothingToExport
)

// KernelError is returned by Kernel façade methods for failures local to
// handle bookkeeping, distinct from the ops.OperationError a
// wrapped modeling call can also return.
type KernelError struct {
	Kind KernelErrorKind
}

func (e *KernelError) Error() string {
	switch e.Kind {
	case UnknownHandle:
		return "kernel: handle does not belong to this rebuild"
	case NothingToExport:
		return "kernel: no solid available to export"
	default:
		return "kernel error"
	}
}

func errUnknownHandle() *KernelError { return &KernelError{Kind: UnknownHandle} }

// Valid reports whether handle was produced by (and is still tracked by)
// this Kernel.
func (k *Kernel) Valid(handle KernelSolidHandle) bool {
	_, ok := k.solids[handle.id]
	return ok
}

func (k *Kernel) checkHandle(handle KernelSolidHandle) error {
	if !k.Valid(handle) {
		return errUnknownHandle()
	}
	return nil
}
