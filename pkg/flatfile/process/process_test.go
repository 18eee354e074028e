package process

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxwell-fr/ffreader/pkg/flatfile"
)

func TestTrim(t *testing.T) {
	result := Trim().Process("  ab 12  ")
	assert.NoError(t, result.Err)
	assert.Equal(t, "ab 12", result.Value)
}

func TestNonBlank(t *testing.T) {
	assert.NoError(t, NonBlank().Process(" x ").Err)

	result := NonBlank().Process("    ")
	assert.Error(t, result.Err)
}

func TestDigits(t *testing.T) {
	t.Run("AllDigits", func(t *testing.T) {
		result := Digits().Process(" 00123 ")
		assert.NoError(t, result.Err)
		assert.Empty(t, result.Warning)
		assert.Equal(t, "00123", result.Value)
	})

	t.Run("Blank", func(t *testing.T) {
		result := Digits().Process("     ")
		assert.NoError(t, result.Err)
		assert.NotEmpty(t, result.Warning)
		assert.Equal(t, "", result.Value)
	})

	t.Run("NonDigit", func(t *testing.T) {
		result := Digits().Process("12a45")
		assert.Error(t, result.Err)
	})
}

func TestDecimal(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		result := Decimal().Process(" 123.45 ")
		assert.NoError(t, result.Err)
		assert.Equal(t, "123.45", result.Value)
	})

	t.Run("Blank", func(t *testing.T) {
		result := Decimal().Process("      ")
		assert.NoError(t, result.Err)
		assert.NotEmpty(t, result.Warning)
	})

	t.Run("Garbage", func(t *testing.T) {
		result := Decimal().Process("12.3.4")
		assert.Error(t, result.Err)
	})
}

func TestOneOf(t *testing.T) {
	proc := OneOf("A", "I")

	result := proc.Process(" A ")
	assert.NoError(t, result.Err)
	assert.Equal(t, "A", result.Value)

	result = proc.Process("X")
	assert.Error(t, result.Err)
}

func TestChain(t *testing.T) {
	t.Run("FeedsValuesForward", func(t *testing.T) {
		proc := Chain(Trim(), OneOf("A"))
		result := proc.Process("  A  ")
		assert.NoError(t, result.Err)
		assert.Equal(t, "A", result.Value)
	})

	t.Run("StopsOnRejection", func(t *testing.T) {
		called := false
		after := flatfile.ProcessorFunc(func(raw string) flatfile.Result {
			called = true
			return flatfile.Accept(raw)
		})
		result := Chain(NonBlank(), after).Process("   ")
		assert.Error(t, result.Err)
		assert.False(t, called)
	})

	t.Run("CollectsWarnings", func(t *testing.T) {
		result := Chain(Digits(), Trim()).Process("     ")
		assert.NoError(t, result.Err)
		assert.Contains(t, result.Warning, "blank")
	})
}
