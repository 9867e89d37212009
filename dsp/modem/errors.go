package modem

import "errors"

var (
	// ErrInvalidConfig reports a modulation configuration that cannot be run.
	ErrInvalidConfig = errors.New("modem: invalid config")
	// ErrBlockSize reports a block whose length differs from the configured size.
	ErrBlockSize = errors.New("modem: block length does not match block size")
	// ErrKernel reports an RRC kernel that is empty or does not fit one block.
	ErrKernel = errors.New("modem: rrc kernel does not fit the block")
)
