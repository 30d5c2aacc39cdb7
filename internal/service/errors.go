package service

import (
	"errors"

	"preorder-service/internal/model"
)

// domainErr extracts a DomainError from a transaction error, nil when the
// failure is storage-level and should surface as TRANSIENT instead.
func domainErr(err error) *model.DomainError {
	var de *model.DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
