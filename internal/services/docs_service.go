package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"safari-backend/internal/domain"
	"safari-backend/internal/domain/models"
	"safari-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the visitor's booking ticket.
type DocsService struct {
	Bookings  BookingService
	RequestID string
	Loader    func(ctx context.Context, date string, token int) (models.BookingDetail, error)
}

func (s DocsService) GenerateTicket(ctx context.Context, date string, token int) ([]byte, string, error) {
	d, err := s.load(ctx, date, token)
	if err != nil {
		return nil, "", err
	}
	if d.Expired {
		return nil, "", domain.ExpiredError{BookingID: d.ID}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("booking_id=%d token=%d", d.ID, d.Token))
	return buildTicketPDF(d, s.Bookings.Rules)
}

func (s DocsService) load(ctx context.Context, date string, token int) (models.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(ctx, date, token)
	}
	return s.Bookings.GetBookingByToken(ctx, date, token)
}

func buildTicketPDF(d models.BookingDetail, rules domain.Rules) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Safari Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SAFARI TICKET")
	pdf.Ln(12)

	payment := "Pending"
	if d.PaymentDone {
		payment = "Paid (" + strings.ToUpper(string(d.PaymentMode)) + ")"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Token          : %d", d.Token),
		fmt.Sprintf("Name           : %s", safe(d.Name, "-")),
		fmt.Sprintf("Phone          : %s", safe(d.Phone, "-")),
		fmt.Sprintf("Safari Date    : %s", safe(d.SafariDate, "-")),
		fmt.Sprintf("Time Slot      : %s", safe(d.TimeSlot, "-")),
		fmt.Sprintf("Visitors       : %d adults, %d children", d.Adults, d.Children),
		fmt.Sprintf("Amount         : %s", utils.FormatRupees(d.PaymentAmount)),
		fmt.Sprintf("Payment        : %s", payment),
		fmt.Sprintf("Status         : %s", d.SafariStatus),
		fmt.Sprintf("Vehicles       : %s", safe(d.VehicleNumbers, "-")),
		fmt.Sprintf("Drivers        : %s", safe(d.Drivers, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Seats")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	vehicleOf := seatVehicles(d)
	for _, st := range d.SubTokens {
		pdf.Cell(0, 6, fmt.Sprintf("%-8s vehicle %s", st, safe(vehicleOf[st], "-")))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	if d.PaymentDone {
		pdf.MultiCell(0, 6, "Show this ticket at the gate. Each seat code boards the vehicle listed next to it.", "", "", false)
	} else {
		pdf.MultiCell(0, 6, "Seats are held until "+utils.FormatDateTime(d.ExpiryTime, rules.Location)+". Pay at reception before then.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TICKET_%s_%d.pdf", safeFilenamePart(d.SafariDate), d.Token)
	return buf.Bytes(), filename, nil
}

func seatVehicles(d models.BookingDetail) map[string]string {
	out := map[string]string{}
	for _, v := range d.Vehicles {
		for _, p := range v.Passengers {
			if p.BookingID == d.ID {
				out[p.SubToken] = strconv.Itoa(v.VehicleNumber)
			}
		}
	}
	return out
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
