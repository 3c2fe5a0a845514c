package viewer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/landfinder/landfinder-terminal/pkg/geocode"
	"github.com/landfinder/landfinder-terminal/pkg/listings"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/landfinder/landfinder-terminal/pkg/search"
	"go.uber.org/zap"
)

// DefaultGeocodeTimeout bounds a geocode call when none is configured
const DefaultGeocodeTimeout = 10 * time.Second

var (
	// ErrAddressNotFound is reported when the geocoder fails or finds nothing
	ErrAddressNotFound = errors.New("address not found")

	// ErrStaleResponse is returned for a geocode outcome that no longer
	// belongs to the pending request
	ErrStaleResponse = errors.New("stale geocode response")
)

// AddressNotFoundMessage is shown to the user for ErrAddressNotFound
const AddressNotFoundMessage = "Address not found. Try more specific address."

// Message returns the text to show the user for an add-listing error
func Message(err error) string {
	if errors.Is(err, ErrAddressNotFound) {
		return AddressNotFoundMessage
	}
	return err.Error()
}

// Form holds the raw add-listing inputs
type Form struct {
	Title   string
	Address string
	Price   string
	Sqft    string
	Owner   string
	Phone   string
	Desc    string
}

// ValidationError lists the required fields that are empty or zero
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Please fill all fields: " + strings.Join(e.Missing, ", ")
}

// Validate checks required fields and returns the parsed price and area
func (f Form) Validate() (price, sqft float64, err error) {
	var missing []string
	required := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	positive := func(name, value string) float64 {
		v, err := search.ParseBound(value, 0)
		if err != nil || v == 0 || math.IsInf(v, 0) || v > models.MaxAmount {
			missing = append(missing, name)
			return 0
		}
		return v
	}

	required("title", f.Title)
	required("address", f.Address)
	price = positive("price", f.Price)
	sqft = positive("sqft", f.Sqft)
	required("owner", f.Owner)
	required("phone", f.Phone)

	if len(missing) > 0 {
		return 0, 0, &ValidationError{Missing: missing}
	}
	return price, sqft, nil
}

// Token identifies one geocode request
type Token struct {
	Generation uint64
	RequestID  string
}

// GeocodeJob is a pending geocode request. Run may be called from any
// goroutine; its outcome must be handed back to AddWorkflow.Resolve.
type GeocodeJob struct {
	Token    Token
	Address  string
	geocoder geocode.Geocoder
	timeout  time.Duration
}

// GeocodeOutcome is the result of running a GeocodeJob
type GeocodeOutcome struct {
	Token  Token
	Result geocode.Result
	Err    error
}

// Run performs the lookup, bounded by the workflow's timeout
func (j *GeocodeJob) Run(ctx context.Context) GeocodeOutcome {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	res, err := j.geocoder.Geocode(ctx, j.Address)
	return GeocodeOutcome{Token: j.Token, Result: res, Err: err}
}

// AddWorkflow collects a new listing, geocodes its address and appends it
// to the repository. Every method except GeocodeJob.Run belongs to the UI
// goroutine.
type AddWorkflow struct {
	repo     *listings.Repository
	geocoder geocode.Geocoder
	timeout  time.Duration
	now      func() time.Time
	logger   *zap.Logger

	open       bool
	form       Form
	submitted  Form
	generation uint64
	pending    *Token
}

// NewAddWorkflow creates a closed workflow
func NewAddWorkflow(repo *listings.Repository, geocoder geocode.Geocoder, timeout time.Duration, logger *zap.Logger) *AddWorkflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultGeocodeTimeout
	}
	return &AddWorkflow{
		repo:     repo,
		geocoder: geocoder,
		timeout:  timeout,
		now:      time.Now,
		logger:   logger,
	}
}

// Open shows the form
func (w *AddWorkflow) Open() {
	w.open = true
}

// Toggle shows or hides the form. Hiding it dismisses a pending request.
func (w *AddWorkflow) Toggle() {
	if w.open {
		w.Dismiss()
		return
	}
	w.Open()
}

func (w *AddWorkflow) IsOpen() bool {
	return w.open
}

// Form returns the values last submitted or set
func (w *AddWorkflow) Form() Form {
	return w.form
}

// SetForm records the values being edited
func (w *AddWorkflow) SetForm(f Form) {
	w.form = f
}

// Pending reports whether a geocode request is outstanding
func (w *AddWorkflow) Pending() bool {
	return w.pending != nil
}

// Dismiss hides the form and clears it. A response still in flight will be
// discarded as stale.
func (w *AddWorkflow) Dismiss() {
	w.open = false
	w.form = Form{}
	w.invalidate()
}

// Submit validates f and returns the geocode job to run. A second submit
// while a request is pending supersedes the first, even when it fails
// validation.
func (w *AddWorkflow) Submit(f Form) (*GeocodeJob, error) {
	w.form = f
	w.invalidate()
	if _, _, err := f.Validate(); err != nil {
		return nil, err
	}

	token := Token{Generation: w.generation, RequestID: uuid.NewString()}
	w.pending = &token
	w.submitted = f

	w.logger.Debug("geocoding address",
		zap.String("request", token.RequestID),
		zap.String("address", f.Address))

	return &GeocodeJob{
		Token:    token,
		Address:  strings.TrimSpace(f.Address),
		geocoder: w.geocoder,
		timeout:  w.timeout,
	}, nil
}

// Resolve applies a geocode outcome. On success the new listing is appended
// to the repository and the form is cleared and closed. On failure nothing
// changes and the form keeps its values.
func (w *AddWorkflow) Resolve(o GeocodeOutcome) (models.Listing, error) {
	if w.pending == nil || *w.pending != o.Token {
		w.logger.Debug("discarding geocode response", zap.String("request", o.Token.RequestID))
		return models.Listing{}, ErrStaleResponse
	}
	w.pending = nil

	pos, ok := o.Result.First()
	if o.Err != nil || !ok {
		w.logger.Warn("address not found",
			zap.String("address", w.submitted.Address),
			zap.String("status", o.Result.Status),
			zap.Error(o.Err))
		return models.Listing{}, ErrAddressNotFound
	}

	l, err := w.build(pos)
	if err != nil {
		return models.Listing{}, err
	}
	if err := w.repo.Append(l); err != nil {
		return models.Listing{}, fmt.Errorf("failed to add listing: %w", err)
	}

	w.open = false
	w.form = Form{}
	w.submitted = Form{}
	return l, nil
}

func (w *AddWorkflow) build(pos models.Coordinate) (models.Listing, error) {
	f := w.submitted
	price, sqft, err := f.Validate()
	if err != nil {
		return models.Listing{}, err
	}

	desc := strings.TrimSpace(f.Desc)
	if desc == "" {
		desc = models.DefaultDescription
	}
	return models.Listing{
		ID:    models.UniqueListingID(w.now(), w.repo.Contains),
		Title: strings.TrimSpace(f.Title),
		Area:  strings.TrimSpace(f.Address),
		Lat:   pos.Lat,
		Lng:   pos.Lng,
		Sqft:  sqft,
		Price: price,
		Owner: strings.TrimSpace(f.Owner),
		Phone: strings.TrimSpace(f.Phone),
		Desc:  desc,
	}, nil
}

func (w *AddWorkflow) invalidate() {
	w.generation++
	w.pending = nil
}
