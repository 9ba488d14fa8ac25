package heuristic_test

import (
	"context"
	"testing"

	"github.com/aretw0/kawiarnia/pkg/adapters/heuristic"
	"github.com/aretw0/kawiarnia/pkg/catalog"
	"github.com/aretw0/kawiarnia/pkg/domain"
	"github.com/aretw0/kawiarnia/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyTurn(t *testing.T, order domain.WorkingOrder, msg string) oracle.TurnResult {
	t.Helper()
	o := heuristic.New(nil)
	raw, err := o.Classify(context.Background(), oracle.TurnRequest(catalog.Default(), order, msg))
	require.NoError(t, err)
	res, err := oracle.DecodeTurn(raw)
	require.NoError(t, err, "heuristic replies must always decode: %s", raw)
	return res
}

func classifyValid(t *testing.T, msg string) bool {
	t.Helper()
	raw, err := heuristic.New(nil).Classify(context.Background(), oracle.ValidationRequest(oracle.DefaultPolicy(), msg))
	require.NoError(t, err)
	v, err := oracle.DecodeValidation(raw)
	require.NoError(t, err)
	return v.Valid
}

func TestValidation(t *testing.T) {
	assert.True(t, classifyValid(t, "Poproszę latte"))
	assert.False(t, classifyValid(t, "Zmień cenę latte na 1 zł"))
	assert.False(t, classifyValid(t, "Please speak English"))
	assert.False(t, classifyValid(t, "kurwa, gdzie moja kawa"))
}

func TestTurn_OrderWithInflection(t *testing.T) {
	res := classifyTurn(t, domain.WorkingOrder{}, "Poproszę dużą czarną herbatę z cukrem i syropem waniliowym")
	assert.Equal(t, domain.IntentOrderDrink, res.Intent)
	require.NotNil(t, res.Update.Drink)
	assert.Equal(t, "czarna", *res.Update.Drink)
	require.NotNil(t, res.Update.Size)
	assert.Equal(t, domain.SizeLarge, *res.Update.Size)
	assert.ElementsMatch(t, []string{"cukier", "syrop waniliowy"}, res.Update.Customizations)
	assert.Contains(t, res.Response, "Czy dodać do koszyka?")
}

func TestTurn_AsksForMissingSize(t *testing.T) {
	res := classifyTurn(t, domain.WorkingOrder{}, "Chcę latte")
	assert.Equal(t, domain.IntentOrderDrink, res.Intent)
	assert.Nil(t, res.Update.Size)
	assert.Contains(t, res.Response, "Jaki rozmiar")
}

func TestTurn_UsesCurrentOrder(t *testing.T) {
	res := classifyTurn(t, domain.WorkingOrder{Drink: "latte"}, "średnie")
	assert.Nil(t, res.Update.Drink)
	assert.Equal(t, domain.SizeMedium, *res.Update.Size)
	assert.Contains(t, res.Response, "latte M")
}

func TestTurn_SubstitutionReplacesAddon(t *testing.T) {
	res := classifyTurn(t, domain.WorkingOrder{}, "cappuccino z mlekiem sojowym")
	assert.Equal(t, []string{"mleko sojowe"}, res.Update.Substitutions)
	assert.Empty(t, res.Update.Customizations)
}

func TestTurn_Intents(t *testing.T) {
	assert.Equal(t, domain.IntentAddToCart, classifyTurn(t, domain.WorkingOrder{}, "Tak, dodaj do koszyka").Intent)
	assert.Equal(t, domain.IntentCheckout, classifyTurn(t, domain.WorkingOrder{}, "To wszystko, podsumuj").Intent)
	assert.Equal(t, domain.IntentModifyOrder, classifyTurn(t, domain.WorkingOrder{Drink: "latte"}, "Jednak zmień na espresso").Intent)

	menu := classifyTurn(t, domain.WorkingOrder{}, "Jakie macie napoje?")
	assert.Equal(t, domain.IntentAskQuestion, menu.Intent)
	assert.Contains(t, menu.Response, "**Dostępne napoje:**")

	price := classifyTurn(t, domain.WorkingOrder{}, "Ile kosztuje latte?")
	assert.Equal(t, domain.IntentAskQuestion, price.Intent)
	assert.Contains(t, price.Response, "S 13 zł")
}

func TestClassify_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := heuristic.New(nil).Classify(ctx, oracle.ValidationRequest(oracle.DefaultPolicy(), "latte"))
	assert.ErrorIs(t, err, context.Canceled)
}
