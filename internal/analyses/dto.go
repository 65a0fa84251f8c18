package analyses

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// textRequest is the body for the sentiment and resume tools.
type textRequest struct {
	Text string `json:"text" validate:"nonblank"`
}

// codeRequest is the body for the complexity tool.
type codeRequest struct {
	Code string `json:"code" validate:"nonblank"`
}

type listQuery struct {
	Limit  int `form:"limit" json:"limit" validate:"min=0,max=100"`
	Offset int `form:"offset" json:"offset" validate:"min=0"`
}

// toolResponse is returned by every tool endpoint.
type toolResponse struct {
	AnalysisID string `json:"analysisId"`
	Tool       Tool   `json:"tool"`
	Cached     bool   `json:"cached"`
	Result     any    `json:"result"`
}

// analysisSummary is one history entry.
type analysisSummary struct {
	AnalysisID   string  `json:"analysisId"`
	Tool         Tool    `json:"tool"`
	InputPreview string  `json:"inputPreview"`
	Headline     string  `json:"headline,omitempty"`
	DurationMs   float64 `json:"durationMs"`
	CreatedAt    string  `json:"createdAt"`
}

// fieldIssue mirrors the details entries of the error envelope.
type fieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

func validateStruct(s any) []fieldIssue {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []fieldIssue{{Field: "body", Issue: err.Error()}}
	}
	issues := make([]fieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, fieldIssue{Field: fe.Field(), Issue: formatValidationError(fe)})
	}
	return issues
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "nonblank":
		return fmt.Sprintf("%s cannot be empty or whitespace", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
}
