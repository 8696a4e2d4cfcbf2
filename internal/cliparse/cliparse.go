package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openmohaa/diabotical-leaderboard/internal/models"
)

// Args holds the raw flag values before they become a models.QueryRequest.
type Args struct {
	Mode    string `validate:"required,gamemode"`
	Count   int    `validate:"min=1,max=500"`
	UserID  string `validate:"omitempty,len=32,alphanum,lowercase"`
	Country string `validate:"omitempty,len=2,alpha,lowercase,excluded_with=UserID"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("gamemode", func(fl validator.FieldLevel) bool {
		_, err := models.ParseGameMode(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Parse reads the command line into a query request. Flags may be given
// with one or two dashes. Usage text is written to output on -h and on any
// invalid argument.
func Parse(args []string, output io.Writer) (models.QueryRequest, error) {
	var a Args

	fs := flag.NewFlagSet("leaderboard", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&a.Mode, "mode", "", "Game mode: "+models.GameModeList())
	fs.IntVar(&a.Count, "count", models.DefaultEntryCount, fmt.Sprintf("Number of entries to fetch (1-%d)", models.MaxEntryCount))
	fs.StringVar(&a.UserID, "user_id", "", "Find one entry by its 32-character user id")
	fs.StringVar(&a.Country, "country", "", "Count entries with this two-letter country code")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: leaderboard --mode MODE [--count N] [--user_id ID | --country CC]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return models.QueryRequest{}, err
		}
		return models.QueryRequest{}, &models.ArgumentError{Field: "flags", Reason: err.Error()}
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return models.QueryRequest{}, &models.ArgumentError{Field: "flags", Reason: "unexpected arguments: " + strings.Join(fs.Args(), " ")}
	}

	req, err := a.Request()
	if err != nil {
		fs.Usage()
		return models.QueryRequest{}, err
	}
	return req, nil
}

// Request validates the arguments and builds the request.
func (a Args) Request() (models.QueryRequest, error) {
	if err := validate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.QueryRequest{}, argumentError(verrs[0])
		}
		return models.QueryRequest{}, err
	}

	var filter models.Filter = models.NoFilter{}
	switch {
	case a.UserID != "":
		filter = models.ByUserID{UserID: a.UserID}
	case a.Country != "":
		filter = models.ByCountry{Country: a.Country}
	}
	return models.NewQueryRequest(models.GameMode(a.Mode), a.Count, filter)
}

func argumentError(fe validator.FieldError) *models.ArgumentError {
	switch fe.Field() {
	case "Mode":
		if fe.Tag() == "required" {
			return &models.ArgumentError{Field: "mode", Reason: "--mode is required"}
		}
		return &models.ArgumentError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q (want one of %s)", fe.Value(), models.GameModeList())}
	case "Count":
		return &models.ArgumentError{Field: "count", Reason: fmt.Sprintf("%v is outside 1..%d", fe.Value(), models.MaxEntryCount)}
	case "UserID":
		return &models.ArgumentError{Field: "user_id", Reason: fmt.Sprintf("%q is not 32 lowercase letters or digits", fe.Value())}
	case "Country":
		if fe.Tag() == "excluded_with" {
			return &models.ArgumentError{Field: "country", Reason: "--user_id and --country are mutually exclusive"}
		}
		return &models.ArgumentError{Field: "country", Reason: fmt.Sprintf("%q is not a two-letter lowercase code", fe.Value())}
	default:
		return &models.ArgumentError{Field: strings.ToLower(fe.Field()), Reason: fe.Error()}
	}
}
