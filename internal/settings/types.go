package settings

import "fmt"

// RSI measures momentum and flags overbought/oversold conditions.
type RSI struct {
	LookbackPeriods     int
	OversoldThreshold   float64
	OverboughtThreshold float64
}

func decodeRSI(m map[string]any) (Settings, error) {
	s := &RSI{
		LookbackPeriods:     intFrom(m, "lookback_periods", 14),
		OversoldThreshold:   floatFrom(m, "oversold_threshold", 30.0),
		OverboughtThreshold: floatFrom(m, "overbought_threshold", 70.0),
	}
	return s, s.Validate()
}

func (s *RSI) IndicatorName() string { return "rsi" }

func (s *RSI) ToMap() map[string]any {
	return map[string]any{
		"lookback_periods":     s.LookbackPeriods,
		"oversold_threshold":   s.OversoldThreshold,
		"overbought_threshold": s.OverboughtThreshold,
	}
}

func (s *RSI) Validate() error {
	if err := positive("lookback_periods", s.LookbackPeriods); err != nil {
		return err
	}
	if s.OversoldThreshold >= s.OverboughtThreshold {
		return fmt.Errorf("oversold_threshold %.1f must be below overbought_threshold %.1f",
			s.OversoldThreshold, s.OverboughtThreshold)
	}
	return nil
}

func (s *RSI) ThresholdLevels() (float64, float64) {
	return s.OversoldThreshold, s.OverboughtThreshold
}

// MACD shows the relationship between two moving averages.
type MACD struct {
	FastPeriods   int
	SlowPeriods   int
	SignalPeriods int
}

func decodeMACD(m map[string]any) (Settings, error) {
	s := &MACD{
		FastPeriods:   intFrom(m, "fast_periods", 12),
		SlowPeriods:   intFrom(m, "slow_periods", 26),
		SignalPeriods: intFrom(m, "signal_periods", 9),
	}
	return s, s.Validate()
}

func (s *MACD) IndicatorName() string { return "macd" }

func (s *MACD) ToMap() map[string]any {
	return map[string]any{
		"fast_periods":   s.FastPeriods,
		"slow_periods":   s.SlowPeriods,
		"signal_periods": s.SignalPeriods,
	}
}

func (s *MACD) Validate() error {
	if err := positive("fast_periods", s.FastPeriods); err != nil {
		return err
	}
	if err := positive("slow_periods", s.SlowPeriods); err != nil {
		return err
	}
	if err := positive("signal_periods", s.SignalPeriods); err != nil {
		return err
	}
	if s.FastPeriods >= s.SlowPeriods {
		return fmt.Errorf("fast_periods %d must be below slow_periods %d", s.FastPeriods, s.SlowPeriods)
	}
	return nil
}

// SMA averages price over a fixed window.
type SMA struct {
	LookbackPeriods int
}

func decodeSMA(m map[string]any) (Settings, error) {
	s := &SMA{LookbackPeriods: intFrom(m, "lookback_periods", 20)}
	return s, s.Validate()
}

func (s *SMA) IndicatorName() string { return "sma" }

func (s *SMA) ToMap() map[string]any {
	return map[string]any{"lookback_periods": s.LookbackPeriods}
}

func (s *SMA) Validate() error {
	return positive("lookback_periods", s.LookbackPeriods)
}

// EMA weights recent prices more heavily than an SMA.
type EMA struct {
	LookbackPeriods int
}

func decodeEMA(m map[string]any) (Settings, error) {
	s := &EMA{LookbackPeriods: intFrom(m, "lookback_periods", 20)}
	return s, s.Validate()
}

func (s *EMA) IndicatorName() string { return "ema" }

func (s *EMA) ToMap() map[string]any {
	return map[string]any{"lookback_periods": s.LookbackPeriods}
}

func (s *EMA) Validate() error {
	return positive("lookback_periods", s.LookbackPeriods)
}

// BollingerBands tracks volatility bands around a moving average.
type BollingerBands struct {
	LookbackPeriods    int
	StandardDeviations float64
}

func decodeBollingerBands(m map[string]any) (Settings, error) {
	s := &BollingerBands{
		LookbackPeriods:    intFrom(m, "lookback_periods", 20),
		StandardDeviations: floatFrom(m, "standard_deviations", 2.0),
	}
	return s, s.Validate()
}

func (s *BollingerBands) IndicatorName() string { return "bollinger_bands" }

func (s *BollingerBands) ToMap() map[string]any {
	return map[string]any{
		"lookback_periods":    s.LookbackPeriods,
		"standard_deviations": s.StandardDeviations,
	}
}

func (s *BollingerBands) Validate() error {
	if err := positive("lookback_periods", s.LookbackPeriods); err != nil {
		return err
	}
	if s.StandardDeviations <= 0 {
		return fmt.Errorf("standard_deviations must be positive, got %.2f", s.StandardDeviations)
	}
	return nil
}

// Stochastic compares the closing price to the recent price range.
type Stochastic struct {
	LookbackPeriods     int
	SignalPeriods       int
	SmoothPeriods       int
	OversoldThreshold   float64
	OverboughtThreshold float64
}

func decodeStochastic(m map[string]any) (Settings, error) {
	s := &Stochastic{
		LookbackPeriods:     intFrom(m, "lookback_periods", 14),
		SignalPeriods:       intFrom(m, "signal_periods", 3),
		SmoothPeriods:       intFrom(m, "smooth_periods", 3),
		OversoldThreshold:   floatFrom(m, "oversold_threshold", 20.0),
		OverboughtThreshold: floatFrom(m, "overbought_threshold", 80.0),
	}
	return s, s.Validate()
}

func (s *Stochastic) IndicatorName() string { return "stoch" }

func (s *Stochastic) ToMap() map[string]any {
	return map[string]any{
		"lookback_periods":     s.LookbackPeriods,
		"signal_periods":       s.SignalPeriods,
		"smooth_periods":       s.SmoothPeriods,
		"oversold_threshold":   s.OversoldThreshold,
		"overbought_threshold": s.OverboughtThreshold,
	}
}

func (s *Stochastic) Validate() error {
	if err := positive("lookback_periods", s.LookbackPeriods); err != nil {
		return err
	}
	if err := positive("signal_periods", s.SignalPeriods); err != nil {
		return err
	}
	if err := positive("smooth_periods", s.SmoothPeriods); err != nil {
		return err
	}
	if s.OversoldThreshold >= s.OverboughtThreshold {
		return fmt.Errorf("oversold_threshold %.1f must be below overbought_threshold %.1f",
			s.OversoldThreshold, s.OverboughtThreshold)
	}
	return nil
}

func (s *Stochastic) ThresholdLevels() (float64, float64) {
	return s.OversoldThreshold, s.OverboughtThreshold
}

// ATR measures volatility via the average true range.
type ATR struct {
	LookbackPeriods int
}

func decodeATR(m map[string]any) (Settings, error) {
	s := &ATR{LookbackPeriods: intFrom(m, "lookback_periods", 14)}
	return s, s.Validate()
}

func (s *ATR) IndicatorName() string { return "atr" }

func (s *ATR) ToMap() map[string]any {
	return map[string]any{"lookback_periods": s.LookbackPeriods}
}

func (s *ATR) Validate() error {
	return positive("lookback_periods", s.LookbackPeriods)
}

// ADX measures trend strength regardless of direction.
type ADX struct {
	LookbackPeriods int
}

func decodeADX(m map[string]any) (Settings, error) {
	s := &ADX{LookbackPeriods: intFrom(m, "lookback_periods", 14)}
	return s, s.Validate()
}

func (s *ADX) IndicatorName() string { return "adx" }

func (s *ADX) ToMap() map[string]any {
	return map[string]any{"lookback_periods": s.LookbackPeriods}
}

func (s *ADX) Validate() error {
	return positive("lookback_periods", s.LookbackPeriods)
}

// CCI identifies cyclical overbought/oversold swings.
type CCI struct {
	LookbackPeriods     int
	OversoldThreshold   float64
	OverboughtThreshold float64
}

func decodeCCI(m map[string]any) (Settings, error) {
	s := &CCI{
		LookbackPeriods:     intFrom(m, "lookback_periods", 20),
		OversoldThreshold:   floatFrom(m, "oversold_threshold", -100.0),
		OverboughtThreshold: floatFrom(m, "overbought_threshold", 100.0),
	}
	return s, s.Validate()
}

func (s *CCI) IndicatorName() string { return "cci" }

func (s *CCI) ToMap() map[string]any {
	return map[string]any{
		"lookback_periods":     s.LookbackPeriods,
		"oversold_threshold":   s.OversoldThreshold,
		"overbought_threshold": s.OverboughtThreshold,
	}
}

func (s *CCI) Validate() error {
	if err := positive("lookback_periods", s.LookbackPeriods); err != nil {
		return err
	}
	if s.OversoldThreshold >= s.OverboughtThreshold {
		return fmt.Errorf("oversold_threshold %.1f must be below overbought_threshold %.1f",
			s.OversoldThreshold, s.OverboughtThreshold)
	}
	return nil
}

func (s *CCI) ThresholdLevels() (float64, float64) {
	return s.OversoldThreshold, s.OverboughtThreshold
}

// WilliamsR measures overbought/oversold on a -100..0 scale.
type WilliamsR struct {
	LookbackPeriods     int
	OversoldThreshold   float64
	OverboughtThreshold float64
}

func decodeWilliamsR(m map[string]any) (Settings, error) {
	s := &WilliamsR{
		LookbackPeriods:     intFrom(m, "lookback_periods", 14),
		OversoldThreshold:   floatFrom(m, "oversold_threshold", -80.0),
		OverboughtThreshold: floatFrom(m, "overbought_threshold", -20.0),
	}
	return s, s.Validate()
}

func (s *WilliamsR) IndicatorName() string { return "williams_r" }

func (s *WilliamsR) ToMap() map[string]any {
	return map[string]any{
		"lookback_periods":     s.LookbackPeriods,
		"oversold_threshold":   s.OversoldThreshold,
		"overbought_threshold": s.OverboughtThreshold,
	}
}

func (s *WilliamsR) Validate() error {
	if err := positive("lookback_periods", s.LookbackPeriods); err != nil {
		return err
	}
	if s.OversoldThreshold >= s.OverboughtThreshold {
		return fmt.Errorf("oversold_threshold %.1f must be below overbought_threshold %.1f",
			s.OversoldThreshold, s.OverboughtThreshold)
	}
	return nil
}

func (s *WilliamsR) ThresholdLevels() (float64, float64) {
	return s.OversoldThreshold, s.OverboughtThreshold
}

// OBV relates volume flow to price changes. SMAPeriods optionally smooths the
// raw OBV line; left nil, no smoothing is applied.
type OBV struct {
	SMAPeriods *int
}

func decodeOBV(m map[string]any) (Settings, error) {
	s := &OBV{SMAPeriods: optionalIntFrom(m, "sma_periods")}
	return s, s.Validate()
}

func (s *OBV) IndicatorName() string { return "obv" }

func (s *OBV) ToMap() map[string]any {
	m := map[string]any{}
	if s.SMAPeriods != nil {
		m["sma_periods"] = *s.SMAPeriods
	}
	return m
}

func (s *OBV) Validate() error {
	if s.SMAPeriods != nil {
		return positive("sma_periods", *s.SMAPeriods)
	}
	return nil
}

// ParabolicSAR flags potential reversals in price direction.
type ParabolicSAR struct {
	AccelerationStep float64
	MaxAcceleration  float64
}

func decodeParabolicSAR(m map[string]any) (Settings, error) {
	s := &ParabolicSAR{
		AccelerationStep: floatFrom(m, "acceleration_step", 0.02),
		MaxAcceleration:  floatFrom(m, "max_acceleration", 0.2),
	}
	return s, s.Validate()
}

func (s *ParabolicSAR) IndicatorName() string { return "psar" }

func (s *ParabolicSAR) ToMap() map[string]any {
	return map[string]any{
		"acceleration_step": s.AccelerationStep,
		"max_acceleration":  s.MaxAcceleration,
	}
}

func (s *ParabolicSAR) Validate() error {
	if s.AccelerationStep <= 0 {
		return fmt.Errorf("acceleration_step must be positive, got %.3f", s.AccelerationStep)
	}
	if s.MaxAcceleration < s.AccelerationStep {
		return fmt.Errorf("max_acceleration %.3f must be at least acceleration_step %.3f",
			s.MaxAcceleration, s.AccelerationStep)
	}
	return nil
}

// Ichimoku provides support/resistance levels and momentum.
type Ichimoku struct {
	TenkanPeriods      int
	KijunPeriods       int
	SenkouSpanBPeriods int
}

func decodeIchimoku(m map[string]any) (Settings, error) {
	s := &Ichimoku{
		TenkanPeriods:      intFrom(m, "tenkan_periods", 9),
		KijunPeriods:       intFrom(m, "kijun_periods", 26),
		SenkouSpanBPeriods: intFrom(m, "senkou_span_b_periods", 52),
	}
	return s, s.Validate()
}

func (s *Ichimoku) IndicatorName() string { return "ichimoku" }

func (s *Ichimoku) ToMap() map[string]any {
	return map[string]any{
		"tenkan_periods":        s.TenkanPeriods,
		"kijun_periods":         s.KijunPeriods,
		"senkou_span_b_periods": s.SenkouSpanBPeriods,
	}
}

func (s *Ichimoku) Validate() error {
	if err := positive("tenkan_periods", s.TenkanPeriods); err != nil {
		return err
	}
	if err := positive("kijun_periods", s.KijunPeriods); err != nil {
		return err
	}
	return positive("senkou_span_b_periods", s.SenkouSpanBPeriods)
}
