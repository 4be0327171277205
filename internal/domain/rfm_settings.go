package domain

import (
	"encoding/json"
	"math"
)

// DefaultRecencyHorizonDays — горизонт recency по умолчанию, если мерчант
// не задал свой.
const DefaultRecencyHorizonDays = 365

type rawAxisSettings struct {
	Mode      string   `json:"mode"`
	Threshold *float64 `json:"threshold"`
}

type rawRecencySettings struct {
	Mode        string   `json:"mode"`
	Days        *float64 `json:"days"`
	RecencyDays *float64 `json:"recencyDays"`
	Threshold   *float64 `json:"threshold"`
}

type rawRfmSettings struct {
	Recency   *rawRecencySettings `json:"recency"`
	Frequency *rawAxisSettings    `json:"frequency"`
	Monetary  *rawAxisSettings    `json:"monetary"`
}

type rawRules struct {
	Rfm *rawRfmSettings `json:"rfm"`
}

// DefaultRfmSettings — поведение при отсутствии или порче настроек:
// все оси в auto, горизонт 365 дней.
func DefaultRfmSettings() RfmSettings {
	return RfmSettings{
		RecencyMode: RfmModeAuto,
		RecencyDays: DefaultRecencyHorizonDays,
		Frequency:   RfmAxisSettings{Mode: RfmModeAuto},
		Monetary:    RfmAxisSettings{Mode: RfmModeAuto},
	}
}

// ParseRfmSettings разбирает rulesJson мерчанта в типизированные настройки.
// Ошибки формата не фатальны: любое кривое поле откатывается к дефолту.
func ParseRfmSettings(rulesJSON []byte) RfmSettings {
	settings := DefaultRfmSettings()
	if len(rulesJSON) == 0 {
		return settings
	}

	var rules rawRules
	if err := json.Unmarshal(rulesJSON, &rules); err != nil || rules.Rfm == nil {
		return settings
	}
	rfm := rules.Rfm

	if rec := rfm.Recency; rec != nil {
		days := firstFinite(rec.Days, rec.RecencyDays, rec.Threshold)
		rounded := 0
		if days != nil && *days > 0 {
			rounded = int(math.Round(*days))
		}
		// manual без валидного горизонта откатывается в auto
		if rec.Mode == string(RfmModeManual) && rounded > 0 {
			settings.RecencyMode = RfmModeManual
			settings.RecencyDays = rounded
		} else if rounded > 0 {
			settings.RecencyDays = rounded
		}
	}

	settings.Frequency = parseAxis(rfm.Frequency)
	settings.Monetary = parseAxis(rfm.Monetary)

	return settings
}

func parseAxis(raw *rawAxisSettings) RfmAxisSettings {
	axis := RfmAxisSettings{Mode: RfmModeAuto}
	if raw == nil {
		return axis
	}
	if raw.Mode == string(RfmModeManual) {
		axis.Mode = RfmModeManual
	}
	if raw.Threshold != nil && isFinite(*raw.Threshold) {
		axis.Threshold = *raw.Threshold
		axis.HasThreshold = true
	}
	return axis
}

func firstFinite(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil && isFinite(*v) {
			return v
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
