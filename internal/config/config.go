package config

type Config struct {
	InputPath     string
	OutputVideo   string
	ScriptPath    string
	Width         int
	Height        int
	FourCC        string
	VideoEncoder  string
	Quality       int
	Workers       int
	FontScale     float64
	LineSpacing   int
	Thickness     int
	AutoColor     bool
	IntroPath     string
	IntroDuration float64
	IntroDPI      int
	QRLink        string
	QRSize        int
	QRMargin      int
	ShowStats     bool
	BuildVersion  string
}
