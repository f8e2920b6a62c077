package assert

import "github.com/oomph-ac/kinematic/oerror"

// IsTrue panics with a formatted error if ok is false. It guards programmer errors only:
// anything a user can misconfigure is reported through an error return instead.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
