package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/megabonk/catalog-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestBuilderEmptyBuildsNil() {
	s.Assert().NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestBuilderCollectsFields() {
	err := errors.NewValidationBuilder().
		RequiredField("Store").
		RequiredField("Engine").
		InvalidField("SearchDelay", "must not be negative").
		Build()

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "Store: is required")
	s.Assert().Contains(err.Error(), "Engine: is required")
	s.Assert().Contains(err.Error(), "SearchDelay: is invalid: must not be negative")
}

func (s *ValidationTestSuite) TestValidationErrorMeta() {
	verr := errors.NewValidationError()
	verr.AddFieldError("DataDir", "is required")
	verr.AddFieldError("DataDir", "must be a directory")

	s.Require().True(verr.HasErrors())

	err := verr.ToError()
	s.Require().NotNil(err)

	fields, ok := err.Meta["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	s.Assert().Equal([]string{"is required", "must be a directory"}, fields["DataDir"])
}

func (s *ValidationTestSuite) TestNoErrorsToErrorIsNil() {
	s.Assert().Nil(errors.NewValidationError().ToError())
}
