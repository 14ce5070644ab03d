package debounce

import (
	"sync"
	"time"
)

// New devolve um gatilho que só executa fn depois de wait sem novas
// chamadas; cada chamada intermediária reinicia o relógio.
func New(wait time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}
}
