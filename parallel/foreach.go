// Package parallel contains the small concurrency helper used for filling
// kernel matrix rows. The benchmark runner itself is strictly sequential.
package parallel

import "sync"

// ForEach executes body(i) for every i in [0, length) on at most limit
// concurrent goroutines. A limit below two runs the loop inline on the
// calling goroutine; callers that must stay single-threaded pass 1.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 1 {
		for i := 0; i < length; i++ {
			body(i)
		}
		return
	}
	if limit > length {
		limit = length
	}

	var next int
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(limit)

	for w := 0; w < limit; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				i := next
				next++
				mu.Unlock()
				if i >= length {
					return
				}
				body(i)
			}
		}()
	}

	wg.Wait()
}
