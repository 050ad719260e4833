package gxcan29

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:errcheck
func init() {
	// --- English (default) ---
	message.SetString(language.AmericanEnglish, "msg.started", "CAN29 receive loop started")
	message.SetString(language.AmericanEnglish, "msg.stopped", "CAN29 receive loop stopped")
	message.SetString(language.AmericanEnglish, "msg.read_failed", "Read failed: %v")
	message.SetString(language.AmericanEnglish, "msg.write_failed", "Write failed: %v")
	message.SetString(language.AmericanEnglish, "msg.malformed_frame", "Frame discarded: %v")
	message.SetString(language.AmericanEnglish, "msg.request_timeout", "No answer to %s in %v")
	message.SetString(language.AmericanEnglish, "msg.no_transport", "No transport set. Please give a transport for the bus.")

	// --- German (de) ---
	message.SetString(language.German, "msg.started", "CAN29-Empfang gestartet")
	message.SetString(language.German, "msg.stopped", "CAN29-Empfang gestoppt")
	message.SetString(language.German, "msg.read_failed", "Lesen fehlgeschlagen: %v")
	message.SetString(language.German, "msg.write_failed", "Schreiben fehlgeschlagen: %v")
	message.SetString(language.German, "msg.malformed_frame", "Rahmen verworfen: %v")
	message.SetString(language.German, "msg.request_timeout", "Keine Antwort auf %s in %v")
	message.SetString(language.German, "msg.no_transport", "Kein Transport gesetzt. Bitte geben Sie einen Transport an.")

	// --- Finnish (fi) ---
	message.SetString(language.Finnish, "msg.started", "CAN29-vastaanotto käynnistetty")
	message.SetString(language.Finnish, "msg.stopped", "CAN29-vastaanotto pysäytetty")
	message.SetString(language.Finnish, "msg.read_failed", "Luku epäonnistui: %v")
	message.SetString(language.Finnish, "msg.write_failed", "Kirjoitus epäonnistui: %v")
	message.SetString(language.Finnish, "msg.malformed_frame", "Kehys hylätty: %v")
	message.SetString(language.Finnish, "msg.request_timeout", "Ei vastausta viestiin %s ajassa %v")
	message.SetString(language.Finnish, "msg.no_transport", "Siirtokanavaa ei ole asetettu. Anna väylälle siirtokanava.")

	// --- Swedish (sv) ---
	message.SetString(language.Swedish, "msg.started", "CAN29-mottagning startad")
	message.SetString(language.Swedish, "msg.stopped", "CAN29-mottagning stoppad")
	message.SetString(language.Swedish, "msg.read_failed", "Läsning misslyckades: %v")
	message.SetString(language.Swedish, "msg.write_failed", "Skrivning misslyckades: %v")
	message.SetString(language.Swedish, "msg.malformed_frame", "Ram kasserad: %v")
	message.SetString(language.Swedish, "msg.request_timeout", "Inget svar på %s inom %v")
	message.SetString(language.Swedish, "msg.no_transport", "Ingen transport angiven. Ange en transport för bussen.")
}
