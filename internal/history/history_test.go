package history

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	h := New(0)
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Entries())
	h.Add("1+1", "2")
	h.Add("sqrt(16)", "4")
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []Entry{{"1+1", "2"}, {"sqrt(16)", "4"}}, h.Entries())
}

func TestLast(t *testing.T) {
	h := New(0)
	for i := 0; i < 15; i++ {
		h.Add(strconv.Itoa(i), strconv.Itoa(i))
	}
	cases := []struct {
		name string
		n    int
		want []string
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"one", 1, []string{"14"}},
		{"ten", 10, []string{"5", "6", "7", "8", "9", "10", "11", "12", "13", "14"}},
		{"all", 15, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14"}},
		{"more", 100, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got []string
			for _, e := range h.Last(c.n) {
				got = append(got, e.Input)
			}
			assert.Equal(t, c.want, got)
		})
	}
}

func TestLimit(t *testing.T) {
	h := New(3)
	for i := 0; i < 5; i++ {
		h.Add(strconv.Itoa(i), "")
	}
	require.Equal(t, 3, h.Len())
	assert.Equal(t, []Entry{{"2", ""}, {"3", ""}, {"4", ""}}, h.Entries())
}

func TestClear(t *testing.T) {
	h := New(0)
	h.Add("pi", "3.141592654")
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Last(10))
	h.Add("e", "2.718281828")
	assert.Equal(t, []Entry{{"e", "2.718281828"}}, h.Entries())
}

func TestEntriesCopy(t *testing.T) {
	h := New(0)
	h.Add("1", "1")
	e := h.Entries()
	e[0].Result = "2"
	l := h.Last(1)
	l[0].Input = "x"
	assert.Equal(t, []Entry{{"1", "1"}}, h.Entries())
}

func TestConcurrent(t *testing.T) {
	h := New(50)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Add("1", "1")
				h.Last(10)
				h.Len()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, h.Len())
}
