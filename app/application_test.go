package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDisplayer_MaskString(t *testing.T) {
	displayer := NewConfigDisplayer()

	assert.Equal(t, "****", displayer.maskString(""))
	assert.Equal(t, "****", displayer.maskString("abc"))

	masked := displayer.maskString("verylongpassword")
	assert.Equal(t, "very************", masked)
	assert.Len(t, masked, len("verylongpassword"))
}

func TestApplicationLifecycle(t *testing.T) {
	t.Run("ShutdownWithNilDB", func(t *testing.T) {
		application := &Application{}

		assert.NotPanics(t, func() {
			assert.NoError(t, application.Shutdown())
		})
	})

	t.Run("ConfigGetter", func(t *testing.T) {
		application := &Application{}
		assert.Nil(t, application.Config())
	})
}
