package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRfmSettings_EmptyAndMalformed(t *testing.T) {
	def := DefaultRfmSettings()

	assert.Equal(t, def, ParseRfmSettings(nil))
	assert.Equal(t, def, ParseRfmSettings([]byte("")))
	assert.Equal(t, def, ParseRfmSettings([]byte("not json at all")))
	assert.Equal(t, def, ParseRfmSettings([]byte(`{"rfm": null}`)))
	assert.Equal(t, def, ParseRfmSettings([]byte(`{"unrelated": true}`)))
}

func TestParseRfmSettings_FullManual(t *testing.T) {
	rules := []byte(`{
		"rfm": {
			"recency": {"mode": "manual", "days": 90},
			"frequency": {"mode": "manual", "threshold": 10},
			"monetary": {"mode": "manual", "threshold": 5000}
		}
	}`)

	settings := ParseRfmSettings(rules)
	assert.Equal(t, RfmModeManual, settings.RecencyMode)
	assert.Equal(t, 90, settings.RecencyDays)
	assert.Equal(t, RfmModeManual, settings.Frequency.Mode)
	assert.True(t, settings.Frequency.HasThreshold)
	assert.Equal(t, 10.0, settings.Frequency.Threshold)
	assert.Equal(t, RfmModeManual, settings.Monetary.Mode)
	assert.Equal(t, 5000.0, settings.Monetary.Threshold)
}

func TestParseRfmSettings_ManualRecencyWithoutDaysFallsBackToAuto(t *testing.T) {
	rules := []byte(`{"rfm": {"recency": {"mode": "manual"}}}`)
	settings := ParseRfmSettings(rules)
	assert.Equal(t, RfmModeAuto, settings.RecencyMode)
	assert.Equal(t, DefaultRecencyHorizonDays, settings.RecencyDays)

	rules = []byte(`{"rfm": {"recency": {"mode": "manual", "days": -5}}}`)
	settings = ParseRfmSettings(rules)
	assert.Equal(t, RfmModeAuto, settings.RecencyMode)
}

func TestParseRfmSettings_RecencyDaysFallbackChain(t *testing.T) {
	// legacy-ключ recencyDays работает наравне с days
	settings := ParseRfmSettings([]byte(`{"rfm": {"recency": {"mode": "manual", "recencyDays": 120}}}`))
	assert.Equal(t, RfmModeManual, settings.RecencyMode)
	assert.Equal(t, 120, settings.RecencyDays)

	// threshold — последний в цепочке
	settings = ParseRfmSettings([]byte(`{"rfm": {"recency": {"mode": "manual", "threshold": 60}}}`))
	assert.Equal(t, 60, settings.RecencyDays)
}

func TestParseRfmSettings_DaysRounded(t *testing.T) {
	settings := ParseRfmSettings([]byte(`{"rfm": {"recency": {"mode": "manual", "days": 89.6}}}`))
	assert.Equal(t, 90, settings.RecencyDays)
}

func TestParseRfmSettings_AutoWithCustomHorizon(t *testing.T) {
	// auto-режим, но кастомный горизонт учитывается
	settings := ParseRfmSettings([]byte(`{"rfm": {"recency": {"mode": "auto", "days": 180}}}`))
	assert.Equal(t, RfmModeAuto, settings.RecencyMode)
	assert.Equal(t, 180, settings.RecencyDays)
}

func TestParseRfmSettings_ManualAxisWithoutThreshold(t *testing.T) {
	settings := ParseRfmSettings([]byte(`{"rfm": {"frequency": {"mode": "manual"}}}`))
	assert.Equal(t, RfmModeManual, settings.Frequency.Mode)
	assert.False(t, settings.Frequency.HasThreshold)
}

func TestParseRfmSettings_UnknownModeIsAuto(t *testing.T) {
	settings := ParseRfmSettings([]byte(`{"rfm": {"monetary": {"mode": "something", "threshold": 100}}}`))
	assert.Equal(t, RfmModeAuto, settings.Monetary.Mode)
	assert.True(t, settings.Monetary.HasThreshold)
}
