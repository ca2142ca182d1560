package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"sheet-cli/internal/model"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput wraps every validation failure. Title required is the only content
// rule; difficulty and video link are checked for shape only.
var ErrInvalidInput = errors.New("invalid input")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q", ErrInvalidInput, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func validateTopicInput(in *model.TopicInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validatorInstance().Struct(in); err != nil {
		return invalid(err)
	}
	return nil
}

func validateSubTopicInput(in *model.SubTopicInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validatorInstance().Struct(in); err != nil {
		return invalid(err)
	}
	return nil
}

func validateQuestionInput(in *model.QuestionInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.VideoLink = strings.TrimSpace(in.VideoLink)
	if err := validatorInstance().Struct(in); err != nil {
		return invalid(err)
	}
	return nil
}

// normalizeTitle returns a trimmed copy of title, leaving the caller's string alone.
func normalizeTitle(title *string) (*string, error) {
	if title == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*title)
	if err := validatorInstance().Var(v, "required"); err != nil {
		return nil, fmt.Errorf("%w: title failed %q", ErrInvalidInput, "required")
	}
	return &v, nil
}

func normalizeQuestionPatch(p model.QuestionPatch) (model.QuestionPatch, error) {
	title, err := normalizeTitle(p.Title)
	if err != nil {
		return p, err
	}
	p.Title = title
	if p.Difficulty != nil && !p.Difficulty.Valid() {
		return p, fmt.Errorf("%w: difficulty failed %q", ErrInvalidInput, "oneof")
	}
	if p.VideoLink != nil {
		link := strings.TrimSpace(*p.VideoLink)
		if err := validatorInstance().Var(link, "omitempty,url"); err != nil {
			return p, fmt.Errorf("%w: videolink failed %q", ErrInvalidInput, "url")
		}
		p.VideoLink = &link
	}
	return p, nil
}
