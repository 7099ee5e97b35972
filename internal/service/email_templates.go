package service

import (
	"fmt"
	"time"
)

func passwordResetEmailTemplate(name, resetURL, appName string, validFor time.Duration) (string, string) {
	subject := fmt.Sprintf("Restablece tu contraseña en %s", appName)
	body := fmt.Sprintf(`Hola %s,

Recibimos una solicitud para restablecer tu contraseña. Usa este enlace para elegir una nueva:
%s

El enlace caduca en %d minutos.

Si no solicitaste el cambio, ignora este correo. Tu contraseña no se modificará.

Saludos,
El equipo de %s`, name, resetURL, int(validFor.Minutes()), appName)

	return subject, body
}
