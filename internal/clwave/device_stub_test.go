//go:build !opencl

package clwave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithoutOpenCL(t *testing.T) {
	d, err := New(nil)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrUnavailable)
}
