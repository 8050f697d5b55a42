package models

// Currency describes a supported currency and its minor-unit precision.
type Currency struct {
	Code          string `json:"code"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	DecimalPlaces int    `json:"decimal_places"`
}

// SupportedCurrencies lists the currencies a user can select in settings.
var SupportedCurrencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", DecimalPlaces: 2},
	{Code: "EUR", Symbol: "€", Name: "Euro", DecimalPlaces: 2},
	{Code: "GBP", Symbol: "£", Name: "British Pound", DecimalPlaces: 2},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", DecimalPlaces: 0},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", DecimalPlaces: 2},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", DecimalPlaces: 2},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc", DecimalPlaces: 2},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan", DecimalPlaces: 2},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", DecimalPlaces: 2},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won", DecimalPlaces: 0},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real", DecimalPlaces: 2},
	{Code: "MXN", Symbol: "$", Name: "Mexican Peso", DecimalPlaces: 2},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", DecimalPlaces: 2},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar", DecimalPlaces: 2},
	{Code: "NOK", Symbol: "kr", Name: "Norwegian Krone", DecimalPlaces: 2},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona", DecimalPlaces: 2},
	{Code: "DKK", Symbol: "kr", Name: "Danish Krone", DecimalPlaces: 2},
	{Code: "PLN", Symbol: "zł", Name: "Polish Zloty", DecimalPlaces: 2},
	{Code: "CZK", Symbol: "Kč", Name: "Czech Koruna", DecimalPlaces: 2},
	{Code: "HUF", Symbol: "Ft", Name: "Hungarian Forint", DecimalPlaces: 0},
}

// CurrencyByCode looks up a supported currency by ISO code.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// CurrencyDecimalPlaces returns the minor-unit precision for a currency
// code. Unknown codes default to 2 decimal places.
func CurrencyDecimalPlaces(code string) int {
	if c, ok := CurrencyByCode(code); ok {
		return c.DecimalPlaces
	}
	return 2
}
