// Package schemas holds the validation schemas and field descriptors of every
// form the booking service accepts.
package schemas

import (
	"github.com/Pedro-J-Kukul/vuelosapi/internal/form"
	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

const msgOnlyLetters = "Solo letras, mínimo 2 caracteres"

// Login validates the sign-in form.
var Login = form.Schema{
	"correo":     emailRule("El correo electrónico es requerido", "Por favor ingrese un correo electrónico válido"),
	"contrasena": passwordRule("La contraseña es requerida", "La contraseña debe tener al menos 6 caracteres"),
}

// Register validates account creation. Both the email and the password must
// be typed twice.
var Register = form.Schema{
	"correo":              emailRule("El correo electrónico es requerido", "Por favor ingrese un correo electrónico válido"),
	"confirmarCorreo":     confirmRule("correo", "Confirma tu correo electrónico", "Los correos electrónicos no coinciden"),
	"contrasena":          passwordRule("La contraseña es requerida", "La contraseña debe tener al menos 6 caracteres"),
	"confirmarContrasena": confirmRule("contrasena", "Confirma tu contraseña", "Las contraseñas no coinciden"),
}

// Profile validates the passenger profile. The document number is checked
// against the document type selected in the same form.
var Profile = form.Schema{
	"tipoDocumento": func(value string, _ form.Values) string {
		if value == "" {
			return "Selecciona un tipo de documento"
		}
		switch value {
		case validator.DocumentCC, validator.DocumentCE, validator.DocumentPA, validator.DocumentTI:
			return ""
		}
		return "Tipo de documento inválido"
	},
	"numeroDocumento": func(value string, all form.Values) string {
		if msg, ok := required(value, "El número de documento es requerido"); !ok {
			return msg
		}
		if !validator.IsValidDocumentNumber(value, all["tipoDocumento"]) {
			return "Número de documento inválido"
		}
		return ""
	},
	"primerNombre":    nameRule("El primer nombre es requerido"),
	"segundoNombre":   optionalNameRule,
	"primerApellido":  nameRule("El primer apellido es requerido"),
	"segundoApellido": optionalNameRule,
	"numeroCelular": func(value string, _ form.Values) string {
		if msg, ok := required(value, "El número celular es requerido"); !ok {
			return msg
		}
		if !validator.IsValidPhone(value) {
			return "Debe tener 10 dígitos"
		}
		return ""
	},
	"fechaNacimiento": func(value string, _ form.Values) string {
		if msg, ok := required(value, "La fecha de nacimiento es requerida"); !ok {
			return msg
		}
		if !validator.IsValidBirthDate(value) {
			return "Debes ser mayor de 18 años"
		}
		return ""
	},
	"correo":              emailRule("El correo es requerido", "Correo electrónico inválido"),
	"confirmarCorreo":     confirmRule("correo", "Confirma tu correo", "Los correos no coinciden"),
	"contrasena":          passwordRule("La contraseña es requerida", "Mínimo 6 caracteres"),
	"confirmarContrasena": confirmRule("contrasena", "Confirma tu contraseña", "Las contraseñas no coinciden"),
}

// Flight validates the administrator's create and edit form.
var Flight = form.Schema{
	"codigo": func(value string, _ form.Values) string {
		if msg, ok := required(value, "El código del vuelo es requerido"); !ok {
			return msg
		}
		if !FlightCodeRX.MatchString(value) {
			return "Formato inválido, use AA-123"
		}
		return ""
	},
	"aerolinea": requiredRule("Selecciona una aerolínea"),
	"origen":    requiredRule("Selecciona la ciudad de origen"),
	"destino":   differentFrom("origen", "Selecciona la ciudad de destino", "El destino debe ser diferente al origen"),
	"fecha":     dateRule("La fecha del vuelo es requerida", "Fecha inválida"),
	"salida":    clockRule("La hora de salida es requerida"),
	"llegada":   clockRule("La hora de llegada es requerida"),
	"precio":    intRange("El precio es requerido", "El precio debe ser mayor a 0", 1, -1),
	"asientos":  intRange("El número de asientos es requerido", "Debe ser un número entero mayor o igual a 0", 0, -1),
}

// Search validates the flight search form. The passenger count is free text
// and has no rule.
var Search = form.Schema{
	"origen":   requiredRule("Selecciona la ciudad de origen"),
	"destino":  differentFrom("origen", "Selecciona la ciudad de destino", "El destino debe ser diferente al origen"),
	"fechaIda": dateRule("Selecciona la fecha de ida", "Fecha inválida"),
}

// Reservation validates the booking confirmation.
var Reservation = form.Schema{
	"vueloId":  intRange("Selecciona un vuelo", "Vuelo inválido", 1, -1),
	"cantidad": intRange("La cantidad es requerida", "Debe ser un número entre 1 y 9", 1, MaxSeatsPerReservation),
}
