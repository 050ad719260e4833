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
	"sync"
)

// IsAnswer reports whether answer is the reply to question. The reply
// swaps the addresses and carries only the low nibble of the class.
func IsAnswer(question, answer GXMessage) bool {
	return question.Dest == answer.Src &&
		question.Src == answer.Dest &&
		question.CmdClass&0x0F == answer.CmdClass &&
		question.CmdNumber == answer.CmdNumber &&
		question.SubID == answer.SubID
}

// pendingRequest is the single outstanding synchronous request.
type pendingRequest struct {
	question GXMessage
	answer   chan GXMessage
}

// correlator pairs incoming messages with the pending request. Only one
// request is tracked; a new one replaces the previous.
type correlator struct {
	mu      sync.Mutex
	pending *pendingRequest
}

// expect registers question as the pending request.
func (c *correlator) expect(question GXMessage) *pendingRequest {
	req := &pendingRequest{question: question, answer: make(chan GXMessage, 1)}
	c.mu.Lock()
	c.pending = req
	c.mu.Unlock()
	return req
}

// cancel clears req if it is still pending.
func (c *correlator) cancel(req *pendingRequest) {
	c.mu.Lock()
	if c.pending == req {
		c.pending = nil
	}
	c.mu.Unlock()
}

// offer completes the pending request when msg answers it.
func (c *correlator) offer(msg GXMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil || !IsAnswer(c.pending.question, msg) {
		return false
	}
	c.pending.answer <- msg
	c.pending = nil
	return true
}
