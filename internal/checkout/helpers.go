package checkout

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	_ = message.Set(language.English, msgCheckoutSuccess,
		plural.Selectf(1, "",
			plural.One, "Checkout complete: %d transaction created",
			plural.Other, "Checkout complete: %d transactions created",
		),
	)
}

var messagePrinter = message.NewPrinter(language.English)

func checkoutSuccessMessage(transactionCount int) string {
	return messagePrinter.Sprintf(msgCheckoutSuccess, transactionCount)
}
