package httpserver

import (
	"moviestore/entity"
	"moviestore/errs"
)

// outcomeError turns a rejected service outcome into an application error.
func outcomeError(reason entity.Reason, subject string) error {
	switch reason {
	case entity.Ok:
		return nil
	case entity.Duplicate:
		return errs.Errorf(errs.ECONFLICT, "%s already exists", subject)
	case entity.NotFound:
		return errs.Errorf(errs.ENOTFOUND, "%s not found", subject)
	case entity.Blocked:
		return errs.Errorf(errs.EINVALID, "%s is still referenced", subject)
	}
	return errs.Errorf(errs.EINTERNAL, "unexpected outcome %s", reason)
}
