package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// These primitives sit at every trust boundary of the gate, so the suite pins
// invariants like "wrapped domain errors preserve the original code" and
// "errors.Is matches by code".
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "access record not found"}
		s.Equal("access record not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeAccessDenied}
		s.Equal("access_denied", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "policy store unreachable")
	s.ErrorIs(err, cause)
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	err := New(CodeAccessDenied, "no allow-list entry")
	s.ErrorIs(err, &Error{Code: CodeAccessDenied})
	s.NotErrorIs(err, &Error{Code: CodeUnauthorized})
}

func (s *DomainErrorsSuite) TestWrapPreservesExistingCode() {
	inner := New(CodeConflict, "identity already granted")
	outer := Wrap(fmt.Errorf("grant: %w", inner), CodeInternal, "grant failed")

	var de *Error
	s.Require().ErrorAs(outer, &de)
	s.Equal(CodeConflict, de.Code)
}

func (s *DomainErrorsSuite) TestHasCode() {
	err := Wrap(errors.New("timeout awaiting header"), CodeTimeout, "access check timed out")
	s.True(HasCode(err, CodeTimeout))
	s.False(HasCode(err, CodeInternal))
	s.False(HasCode(errors.New("plain"), CodeTimeout))
}
