// File: internal/sheets/formatter.go
package sheets

import (
	"time"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/data"
)

// ManifestHeader is the first row of every manifest sheet.
var ManifestHeader = []any{
	"Código reserva",
	"Documento",
	"Nombre",
	"Email",
	"Celular",
	"Nacimiento",
	"Pasajes",
}

// FormatManifestData lays out a flight's manifest: the header, one row per
// reservation, then a flight summary and the export details.
func FormatManifestData(flight *data.Flight, passengers []*data.Passenger, exportedBy string, at time.Time) [][]any {
	rows := make([][]any, 0, len(passengers)+12)
	rows = append(rows, ManifestHeader)

	seats := 0
	for _, p := range passengers {
		rows = append(rows, []any{
			p.ReservationCode.String(),
			p.Document,
			p.Name,
			p.Email,
			p.Phone,
			p.BirthDate,
			p.Quantity,
		})
		seats += p.Quantity
	}

	rows = append(rows,
		[]any{},
		[]any{"Vuelo", flight.Code},
		[]any{"Aerolínea", flight.Airline},
		[]any{"Ruta", flight.Route()},
		[]any{"Fecha", flight.Date + " " + flight.Departure + " - " + flight.Arrival},
		[]any{"Reservas", len(passengers)},
		[]any{"Pasajes vendidos", seats},
		[]any{"Asientos disponibles", flight.Seats},
		[]any{"Ingresos", data.FormatCOP(flight.Price * int64(seats))},
		[]any{},
		[]any{"Exportado por", exportedBy},
		[]any{"Fecha de exportación", at.Format("2006-01-02 15:04:05")},
	)
	return rows
}
