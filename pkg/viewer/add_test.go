package viewer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/landfinder/landfinder-terminal/pkg/geocode"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(*Form)
		missing []string
	}{
		{name: "valid", edit: func(*Form) {}},
		{name: "empty owner", edit: func(f *Form) { f.Owner = "" }, missing: []string{"owner"}},
		{name: "blank title", edit: func(f *Form) { f.Title = "   " }, missing: []string{"title"}},
		{name: "zero price", edit: func(f *Form) { f.Price = "0" }, missing: []string{"price"}},
		{name: "non numeric sqft", edit: func(f *Form) { f.Sqft = "big" }, missing: []string{"sqft"}},
		{name: "price too large to show", edit: func(f *Form) { f.Price = "1e20" }, missing: []string{"price"}},
		{name: "area too large", edit: func(f *Form) { f.Sqft = "2e15" }, missing: []string{"sqft"}},
		{
			name: "several",
			edit: func(f *Form) {
				f.Address = ""
				f.Phone = ""
			},
			missing: []string{"address", "phone"},
		},
		{name: "description is optional", edit: func(f *Form) { f.Desc = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.edit(&f)

			price, sqft, err := f.Validate()
			if tt.missing == nil {
				require.NoError(t, err)
				assert.Equal(t, 2500000.0, price)
				assert.Equal(t, 1200.0, sqft)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Missing)
			assert.Contains(t, err.Error(), "Please fill all fields")
		})
	}
}

func TestAddWithEmptyOwnerChangesNothing(t *testing.T) {
	fx := newFixture(t, nil)
	before := fx.store.LoadListings()

	f := validForm()
	f.Owner = ""
	job, err := fx.app.SubmitAdd(f)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, job)
	assert.Equal(t, 3, fx.repo.Len())
	assert.Equal(t, before, fx.store.LoadListings())
	assert.Equal(t, 0, fx.geo.callCount(), "no geocode call")
	assert.Equal(t, f, fx.app.AddForm().Form(), "form keeps entered values")
}

func TestAddWithGeocodedAddress(t *testing.T) {
	fx := newFixture(t, okGeocoder(11.40, 77.68))
	fx.app.Start()
	fx.app.AddForm().Open()

	job, err := fx.app.SubmitAdd(validForm())
	require.NoError(t, err)
	assert.True(t, fx.app.AddForm().Pending())

	l, err := fx.app.CompleteAdd(job.Run(context.Background()))
	require.NoError(t, err)

	assert.Equal(t, 4, fx.repo.Len())
	assert.Equal(t, 11.40, l.Lat)
	assert.Equal(t, 77.68, l.Lng)
	assert.Equal(t, "Perundurai, Erode", l.Area)
	assert.Equal(t, models.DefaultDescription, l.Desc)
	assert.Equal(t, 2500000.0, l.Price)
	assert.Regexp(t, `^u[0-9a-z]{1,6}`, l.ID)

	saved := fx.store.LoadListings()
	require.Len(t, saved, 1)
	assert.Equal(t, l, saved[0])

	assert.False(t, fx.app.AddForm().IsOpen(), "form closes")
	assert.Equal(t, Form{}, fx.app.AddForm().Form(), "form clears")
	assert.False(t, fx.app.AddForm().Pending())
}

func TestAddAddressNotFound(t *testing.T) {
	tests := []struct {
		name string
		geo  *stubGeocoder
	}{
		{name: "zero results", geo: &stubGeocoder{result: geocode.Result{Status: geocode.StatusZeroResults}}},
		{name: "ok without coordinates", geo: &stubGeocoder{result: geocode.Result{Status: geocode.StatusOK}}},
		{name: "error", geo: &stubGeocoder{result: geocode.Result{Status: geocode.StatusError}, err: errors.New("timeout")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, tt.geo)
			fx.app.AddForm().Open()

			job, err := fx.app.SubmitAdd(validForm())
			require.NoError(t, err)

			_, err = fx.app.CompleteAdd(job.Run(context.Background()))
			assert.ErrorIs(t, err, ErrAddressNotFound)
			assert.Equal(t, "Address not found. Try more specific address.", Message(err))
			assert.Equal(t, 3, fx.repo.Len())
			assert.Empty(t, fx.store.LoadListings())
			assert.True(t, fx.app.AddForm().IsOpen())
			assert.Equal(t, validForm(), fx.app.AddForm().Form())
		})
	}
}

func TestAddResponseAfterDismissIsDiscarded(t *testing.T) {
	fx := newFixture(t, nil)
	fx.app.AddForm().Open()

	job, err := fx.app.SubmitAdd(validForm())
	require.NoError(t, err)

	fx.app.AddForm().Dismiss()
	_, err = fx.app.CompleteAdd(job.Run(context.Background()))
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.Equal(t, 3, fx.repo.Len())
	assert.False(t, fx.app.Popup().IsOpen())
}

func TestAddResponseAfterResetIsDiscarded(t *testing.T) {
	fx := newFixture(t, nil)

	job, err := fx.app.SubmitAdd(validForm())
	require.NoError(t, err)
	require.NoError(t, fx.app.ResetToBuiltins())

	_, err = fx.app.CompleteAdd(job.Run(context.Background()))
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.Empty(t, fx.store.LoadListings())
}

func TestAddResubmitSupersedesPending(t *testing.T) {
	fx := newFixture(t, nil)

	first, err := fx.app.SubmitAdd(validForm())
	require.NoError(t, err)
	second, err := fx.app.SubmitAdd(validForm())
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = fx.app.CompleteAdd(first.Run(context.Background()))
	assert.ErrorIs(t, err, ErrStaleResponse)

	_, err = fx.app.CompleteAdd(second.Run(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, 4, fx.repo.Len(), "only one listing added")

	_, err = fx.app.CompleteAdd(second.Run(context.Background()))
	assert.ErrorIs(t, err, ErrStaleResponse, "an outcome applies once")
}

func TestAddInvalidResubmitSupersedesPending(t *testing.T) {
	fx := newFixture(t, nil)
	fx.app.AddForm().Open()

	first, err := fx.app.SubmitAdd(validForm())
	require.NoError(t, err)

	edited := validForm()
	edited.Title = "Road-facing plot, east side"
	edited.Owner = ""
	_, err = fx.app.SubmitAdd(edited)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, fx.app.AddForm().Pending())

	_, err = fx.app.CompleteAdd(first.Run(context.Background()))
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.Equal(t, 3, fx.repo.Len())
	assert.True(t, fx.app.AddForm().IsOpen())
	assert.Equal(t, edited, fx.app.AddForm().Form(), "edits survive the old response")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, AddressNotFoundMessage, Message(ErrAddressNotFound))
	assert.Equal(t, AddressNotFoundMessage, Message(fmt.Errorf("lookup: %w", ErrAddressNotFound)))
	assert.Equal(t, "disk full", Message(errors.New("disk full")))
}

func TestAddUsesSubmittedValues(t *testing.T) {
	fx := newFixture(t, nil)

	job, err := fx.app.SubmitAdd(validForm())
	require.NoError(t, err)

	edited := validForm()
	edited.Title = "Typed while waiting"
	fx.app.AddForm().SetForm(edited)

	l, err := fx.app.CompleteAdd(job.Run(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, "Road-facing plot", l.Title)
}

func TestGeocodeJobTimeout(t *testing.T) {
	geo := okGeocoder(11.40, 77.68)
	geo.block = make(chan struct{})
	defer close(geo.block)

	fx := newFixture(t, geo)
	fx.app.add.timeout = 20 * time.Millisecond

	job, err := fx.app.SubmitAdd(validForm())
	require.NoError(t, err)

	done := make(chan GeocodeOutcome, 1)
	go func() { done <- job.Run(context.Background()) }()

	select {
	case outcome := <-done:
		assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
		_, err := fx.app.CompleteAdd(outcome)
		assert.ErrorIs(t, err, ErrAddressNotFound)
	case <-time.After(2 * time.Second):
		t.Fatal("geocode job did not time out")
	}
}

func TestAddGeneratedIDsAreUnique(t *testing.T) {
	fx := newFixture(t, nil)
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	fx.app.add.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		job, err := fx.app.SubmitAdd(validForm())
		require.NoError(t, err)
		l, err := fx.app.CompleteAdd(job.Run(context.Background()))
		require.NoError(t, err)
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
	assert.Equal(t, 6, fx.repo.Len())
}
