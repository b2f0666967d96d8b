package ez

import (
	"errors"

	"venue-booking-api/internal/domain"
	resp "venue-booking-api/internal/transport/http/response"
)

var kindCodes = []struct {
	kind error
	code int
}{
	{domain.ErrValidation, resp.CodeBadRequest},
	{domain.ErrSlotUnavailable, resp.CodeBadRequest},
	{domain.ErrTerminalState, resp.CodeBadRequest},
	{domain.ErrUnauthorized, resp.CodeUnauthorized},
	{domain.ErrForbidden, resp.CodeForbidden},
	{domain.ErrNotFound, resp.CodeNotFound},
	{domain.ErrConflict, resp.CodeConflict},
}

func fromDomain(err error) (int, string, map[string]string, bool) {
	for _, k := range kindCodes {
		if !errors.Is(err, k.kind) {
			continue
		}
		var de *domain.Error
		if errors.As(err, &de) {
			return k.code, de.Error(), de.Fields, true
		}
		return k.code, k.kind.Error(), nil, true
	}
	return 0, "", nil, false
}
