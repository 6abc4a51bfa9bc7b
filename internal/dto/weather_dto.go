package dto

// WeatherInfo is the flattened current-conditions view of the upstream
// weather response.
type WeatherInfo struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Pressure    int     `json:"pressure"`
}

// ForecastEntry is one 3-hour slot of the short-term forecast.
type ForecastEntry struct {
	Datetime    string  `json:"datetime"`
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
}
