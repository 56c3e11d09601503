package handlers

import (
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
	"github.com/Shivam-Coderturtle/campus-order-hub/realtime"
	"github.com/Shivam-Coderturtle/campus-order-hub/sms"
)

// Shared handler state, wired once from main before the server starts.
var (
	Cart *models.CartStore
	Hub  *realtime.Hub
	Otp  sms.Provider
)

func Init(cart *models.CartStore, hub *realtime.Hub, otp sms.Provider) {
	Cart = cart
	Hub = hub
	Otp = otp
}
