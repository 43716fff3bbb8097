package i18n

var tables = map[Language]map[string]string{
	English: {
		"venues.title":     "Featured Venues",
		"venues.bookNow":   "Book Now",
		"venues.available": "Available",
		"venues.perHour":   "/hour",
		"venues.empty":     "No venues match your filters",

		"matching.availableMatches": "Available Matches",
		"matching.beginner":         "Beginner",
		"matching.intermediate":     "Intermediate",
		"matching.advanced":         "Advanced",
		"matching.empty":            "No matches found",

		"booking.title":            "Book Your Venue",
		"booking.location":         "Location",
		"booking.date":             "Date",
		"booking.time":             "Time",
		"booking.field":            "Field",
		"booking.totalPrice":       "Total Price",
		"booking.confirmBooking":   "Confirm Booking",
		"booking.freeCancellation": "Free cancellation up to 24h before",
		"booking.notSelected":      "Not selected",

		"booking.step.date":    "Choose date",
		"booking.step.time":    "Choose time",
		"booking.step.field":   "Choose field",
		"booking.step.payment": "Payment",
		"booking.step.confirm": "Confirm",

		"payment.momo":                "MoMo Wallet",
		"payment.momo.description":    "Pay with the MoMo e-wallet",
		"payment.zalopay":             "ZaloPay",
		"payment.zalopay.description": "Pay with the ZaloPay wallet",
		"payment.banking":             "Bank transfer",
		"payment.banking.description": "Transfer from your bank account",
		"payment.cash":                "Cash",
		"payment.cash.description":    "Pay at the venue",

		"date.today":    "Today",
		"date.tomorrow": "Tomorrow",
		"weekday.0":     "Sun",
		"weekday.1":     "Mon",
		"weekday.2":     "Tue",
		"weekday.3":     "Wed",
		"weekday.4":     "Thu",
		"weekday.5":     "Fri",
		"weekday.6":     "Sat",
	},
	Vietnamese: {
		"venues.title":     "Sân nổi bật",
		"venues.bookNow":   "Đặt ngay",
		"venues.available": "Có sẵn",
		"venues.perHour":   "/giờ",
		"venues.empty":     "Không tìm thấy sân phù hợp",

		"matching.availableMatches": "Trận đấu có sẵn",
		"matching.beginner":         "Mới bắt đầu",
		"matching.intermediate":     "Trung cấp",
		"matching.advanced":         "Nâng cao",
		"matching.empty":            "Không tìm thấy trận đấu phù hợp",

		"booking.title":            "Đặt sân của bạn",
		"booking.location":         "Địa điểm",
		"booking.date":             "Ngày",
		"booking.time":             "Giờ",
		"booking.field":            "Sân",
		"booking.totalPrice":       "Tổng giá",
		"booking.confirmBooking":   "Xác nhận đặt sân",
		"booking.freeCancellation": "Miễn phí hủy đến 24h trước",
		"booking.notSelected":      "Chưa chọn",

		"booking.step.date":    "Chọn ngày",
		"booking.step.time":    "Chọn giờ",
		"booking.step.field":   "Chọn sân",
		"booking.step.payment": "Thanh toán",
		"booking.step.confirm": "Xác nhận",

		"payment.momo":                "Ví MoMo",
		"payment.momo.description":    "Thanh toán qua ví điện tử MoMo",
		"payment.zalopay":             "ZaloPay",
		"payment.zalopay.description": "Thanh toán qua ví ZaloPay",
		"payment.banking":             "Chuyển khoản",
		"payment.banking.description": "Chuyển khoản ngân hàng",
		"payment.cash":                "Tiền mặt",
		"payment.cash.description":    "Thanh toán tại sân",

		"date.today":    "Hôm nay",
		"date.tomorrow": "Ngày mai",
		"weekday.0":     "CN",
		"weekday.1":     "T2",
		"weekday.2":     "T3",
		"weekday.3":     "T4",
		"weekday.4":     "T5",
		"weekday.5":     "T6",
		"weekday.6":     "T7",
	},
}
