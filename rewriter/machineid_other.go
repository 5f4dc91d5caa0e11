//go:build !linux && !darwin

package rewriter

import "errors"

func platformMachineID() (string, error) {
	return "", errors.New("machine id not supported on this platform")
}
