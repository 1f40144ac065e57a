package pair

import (
	"context"
	"io"
)

// Usecase is the interface for the pair analytics usecase.
//
//go:generate mockgen -source interface.go -destination=mock/usecase_mock.go -package=pair_mock
type Usecase interface {
	Analyze(ctx context.Context, req Request) (*Analytics, error)
	ExportCSV(ctx context.Context, req Request, w io.Writer) error
}
