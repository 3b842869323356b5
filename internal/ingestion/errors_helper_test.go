package ingestion

import "github.com/synheart-ai/synheart-core/internal/hsierrors"

func asSourceInitError(err error) (*hsierrors.SourceInitError, bool) {
	e, ok := err.(*hsierrors.SourceInitError)
	return e, ok
}
