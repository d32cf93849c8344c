package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/repo"
	"github.com/pkordes/travelbook/internal/service"
)

// budgetFixture is a one-day trip with a 100 EUR hotel and an 80 EUR
// actual lodging expense.
func budgetFixture(t *testing.T, rates service.RateProvider) (*service.BudgetService, domain.Trip) {
	t.Helper()
	st, kv := newState(t)
	ctx := context.Background()
	trip := seedTrip(t, st, "Paris", 1)

	_, err := service.NewDayService(st).Update(ctx, trip.ID, trip.Days[0].ID, domain.DayUpdate{
		Accommodation: &domain.AccommodationPatch{Price: ptr(domain.PriceOf(100))},
	})
	require.NoError(t, err)
	_, err = service.NewExpenseService(st).Add(ctx, trip.ID, 0, domain.CategoryLodging, domain.Expense{Price: domain.PriceOf(80)})
	require.NoError(t, err)

	return service.NewBudgetService(st, repo.NewPreferenceStore(kv, "EUR"), rates), trip
}

func TestBudgetService_Trip_DisplayCurrency(t *testing.T) {
	svc, trip := budgetFixture(t, staticRates(map[string]string{"EUR": "1", "USD": "1.1"}))

	got, err := svc.Trip(context.Background(), trip.ID, "")

	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
	assert.True(t, got.RatesAvailable)
	assert.True(t, dec("100").Equal(got.Planned), got.Planned.String())
	assert.True(t, dec("80").Equal(got.Actual), got.Actual.String())
	assert.True(t, dec("20").Equal(got.Line(domain.CategoryLodging).Difference))
}

func TestBudgetService_Trip_ExplicitTarget(t *testing.T) {
	svc, trip := budgetFixture(t, staticRates(map[string]string{"EUR": "1", "USD": "1.1"}))

	got, err := svc.Trip(context.Background(), trip.ID, "usd")

	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	assert.True(t, dec("110").Equal(got.Planned), got.Planned.String())
	assert.True(t, dec("88").Equal(got.Actual), got.Actual.String())
	assert.Equal(t, "$110.00", got.PlannedDisplay)
}

func TestBudgetService_Trip_WithoutRatesIsUnconverted(t *testing.T) {
	svc, trip := budgetFixture(t, noRates())

	got, err := svc.Trip(context.Background(), trip.ID, "USD")

	require.NoError(t, err)
	assert.False(t, got.RatesAvailable)
	assert.True(t, dec("100").Equal(got.Planned))
}

func TestBudgetService_Trip_UnsupportedTarget(t *testing.T) {
	svc, trip := budgetFixture(t, noRates())

	_, err := svc.Trip(context.Background(), trip.ID, "XXX")

	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestBudgetService_Day_DefaultsToInputPreference(t *testing.T) {
	svc, trip := budgetFixture(t, staticRates(map[string]string{"EUR": "1", "GBP": "0.5"}))
	ctx := context.Background()
	_, err := svc.SetPreferences(ctx, trip.ID, domain.CurrencyPreferences{Input: "gbp"})
	require.NoError(t, err)

	got, err := svc.Day(ctx, trip.ID, 0, "")

	require.NoError(t, err)
	assert.Equal(t, "GBP", got.Currency)
	assert.True(t, dec("100").Equal(got.Planned), got.Planned.String())
	assert.True(t, dec("80").Equal(got.Actual), got.Actual.String())
}

// Amounts typed without a currency are in the trip's input currency, so a
// report in that same currency shows them as typed.
func TestBudgetService_InputCurrencyIsTheSourceOfUntaggedAmounts(t *testing.T) {
	svc, trip := budgetFixture(t, staticRates(map[string]string{"EUR": "1", "GBP": "0.5"}))
	ctx := context.Background()
	_, err := svc.SetPreferences(ctx, trip.ID, domain.CurrencyPreferences{Input: "GBP", Display: "GBP"})
	require.NoError(t, err)

	day, err := svc.Day(ctx, trip.ID, 0, "")
	require.NoError(t, err)
	whole, err := svc.Trip(ctx, trip.ID, "")
	require.NoError(t, err)
	inEUR, err := svc.Trip(ctx, trip.ID, "EUR")
	require.NoError(t, err)

	for _, got := range []service.BudgetReport{day, whole} {
		assert.Equal(t, "GBP", got.Currency)
		assert.True(t, dec("100").Equal(got.Planned), got.Planned.String())
		assert.True(t, dec("80").Equal(got.Actual), got.Actual.String())
	}
	assert.True(t, dec("200").Equal(inEUR.Planned), inEUR.Planned.String())
	assert.True(t, dec("160").Equal(inEUR.Actual), inEUR.Actual.String())
}

func TestBudgetService_Day_OutOfRange(t *testing.T) {
	svc, trip := budgetFixture(t, noRates())

	_, err := svc.Day(context.Background(), trip.ID, 3, "")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBudgetService_Preferences(t *testing.T) {
	svc, trip := budgetFixture(t, noRates())
	ctx := context.Background()

	got, err := svc.Preferences(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyPreferences{Input: "EUR", Display: "EUR"}, got)

	got, err = svc.SetPreferences(ctx, trip.ID, domain.CurrencyPreferences{Display: "jpy"})
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyPreferences{Input: "EUR", Display: "JPY"}, got)

	_, err = svc.SetPreferences(ctx, trip.ID, domain.CurrencyPreferences{Input: "XXX"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.Preferences(ctx, uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBudgetService_Convert(t *testing.T) {
	svc, _ := budgetFixture(t, staticRates(map[string]string{"EUR": "1", "USD": "1.1"}))

	got, err := svc.Convert(context.Background(), dec("10"), "EUR", "usd")

	require.NoError(t, err)
	assert.Equal(t, "USD", got.To)
	assert.True(t, dec("11").Equal(got.Result), got.Result.String())
	assert.Equal(t, "$11.00", got.Display)
	assert.True(t, got.RatesAvailable)
}

func TestBudgetService_Convert_RequiresCodes(t *testing.T) {
	svc, _ := budgetFixture(t, noRates())

	_, err := svc.Convert(context.Background(), dec("10"), "", "USD")

	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestBudgetService_Refresh_Error(t *testing.T) {
	svc, _ := budgetFixture(t, noRates())

	_, err := svc.Refresh(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
}
