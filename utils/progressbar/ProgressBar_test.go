package progressbar

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncrement(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, 10, 4)

	p.Increment()
	p.Increment()
	assert.Equal(t, 2, p.Current())
	assert.True(t, strings.HasPrefix(p.String(), "|█████     | [2/4 50.00%"))
	assert.Contains(t, out.String(), "[1/4 25.00%")

	for i := 0; i < 10; i++ {
		p.Increment()
	}
	assert.Equal(t, 4, p.Current())
	assert.Contains(t, p.String(), "[4/4 100.00%")
}

func TestConcurrentIncrement(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, 20, 100)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Increment()
		}()
	}
	wg.Wait()
	p.Close()

	assert.Equal(t, 100, p.Current())
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}
