package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRajadaColapsaEmUmaExecucao(t *testing.T) {
	var execucoes atomic.Int32
	gatilho := New(20*time.Millisecond, func() { execucoes.Add(1) })

	for i := 0; i < 5; i++ {
		gatilho()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return execucoes.Load() == 1 },
		500*time.Millisecond, 5*time.Millisecond)

	// espera extra para garantir que nenhuma execução atrasada aparece
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), execucoes.Load())
}

func TestRajadasSeparadasExecutamSeparadas(t *testing.T) {
	var execucoes atomic.Int32
	gatilho := New(10*time.Millisecond, func() { execucoes.Add(1) })

	gatilho()
	assert.Eventually(t, func() bool { return execucoes.Load() == 1 },
		500*time.Millisecond, 5*time.Millisecond)

	gatilho()
	assert.Eventually(t, func() bool { return execucoes.Load() == 2 },
		500*time.Millisecond, 5*time.Millisecond)
}
