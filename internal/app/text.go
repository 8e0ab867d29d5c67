package app

// BootLines are printed one after another while the system boots.
var BootLines = []string{
	"PapuSO BIOS v0.4.1",
	"Chequeando memoria ... OK",
	"Dispositivos detectados: teclado, audio, CRT",
	"Montando unidad /data ... OK",
	"Cargando kernel grafico ... OK",
	"Modo terminal: activo",
	"Sincronizando reloj interno ... OK",
	"Sistema listo para iniciar",
}

// BriefingLines explain the operation before the first event.
var BriefingLines = []string{
	"Briefing de operacion",
	"Objetivo: recuperar la linea temporal de la computacion.",
	"Cada evento llega cifrado en binario.",
	"Elige Desencriptar para lanzar un minijuego al azar.",
	"Cada punto revela una palabra del evento.",
	"Si pierdes todas las vidas el evento queda bloqueado.",
	"Controles: flechas o W/A/S/D, espacio para accion.",
	"Enter confirma. Esc abandona el minijuego.",
	"Buena suerte, operador.",
}

// BannerLines are shown above the first prompt after the briefing.
var BannerLines = []string{
	"======================================",
	"              papuSO :v               ",
	"======================================",
}

const (
	textHeader       = "PapuSO"
	textLoading      = "Cargando data.json ..."
	textLoadError    = "Error al cargar data.json."
	textRetry        = "Reintentar (r)"
	textAnyKey       = "Presiona cualquier tecla para continuar"
	textSequence     = "Secuencia"
	textNoEvents     = "data.json sin eventos disponibles."
	textQuestion     = "Pregunta: continuar con la linea?"
	textUnavailable  = "Desencriptar no disponible para este evento."
	textProgress     = "%d / %d palabras descifradas"
	textActive       = "Minijuego activo: %s"
	textScore        = "Puntos: %d  Meta: %d  Vidas: %d"
	textControls     = "Controles: %s"
	textAbort        = "esc para abortar"
	textVictory      = "Estado: victoria"
	textCleared      = "Texto descifrado. Limpiando pantalla ..."
	textContinue     = "Continuar"
	textRestart      = "Reiniciar"
	textMuted        = "[audio silenciado]"
	textBriefingWait = "Iniciando secuencia ..."
)

// ExitLines are shown on the shutdown screen.
var ExitLines = []string{
	"Operacion de salida de SO iniciada",
	"Cerrando procesos en memoria ...",
	"Apagando modulos ...",
}

const textExitSafe = "Estado: seguro"
