package handlers

var (
	MsgSubmitInFlight = "Une demande est déjà en cours de traitement. Veuillez patienter."
	MsgInvalidRequest = "Requête invalide. Veuillez recharger la page."
	MsgViewExpired    = "Le formulaire a expiré. Veuillez réessayer."
)
