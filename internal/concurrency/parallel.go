package concurrency

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ParallelOptions configura el comportamiento del procesamiento paralelo
type ParallelOptions struct {
	// MaxWorkers es el número máximo de trabajadores en paralelo
	MaxWorkers int
}

// DefaultOptions devuelve opciones predeterminadas para procesamiento paralelo
func DefaultOptions() ParallelOptions {
	return ParallelOptions{
		MaxWorkers: 10,
	}
}

func (o ParallelOptions) limit(n int) int {
	workers := o.MaxWorkers
	if workers <= 0 {
		workers = DefaultOptions().MaxWorkers
	}
	return min(workers, n)
}

// ProcessParallel procesa elementos en paralelo usando la función de trabajo proporcionada.
// Devuelve los resultados en el mismo orden que los elementos de entrada junto con
// todos los errores producidos. Un error no cancela los demás elementos; los elementos
// que aún no empezaron cuando se cancela ctx se omiten y quedan con su valor cero.
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	results := make([]R, len(items))
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(opts.limit(len(items)))
	for i, item := range items {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res, err := itemFunc(ctx, i, item)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}
