package inproc

// lightpushReady answers with an error payload when no connected peer
// can serve a lightpush request. Callers must hold e.mu.
func (e *Engine) lightpushReady(peerID string) string {
	if peerID != "" {
		entry, ok := e.peers[peerID]
		if !ok {
			return errorPayload("peer %s not found in peer store", peerID)
		}
		if !entry.connected {
			return errorPayload("peer %s is not connected", peerID)
		}
		return ""
	}
	if e.connectedPeerCount() == 0 {
		return errorPayload("no lightpush peers available")
	}
	return ""
}

// LightpushPublish publishes through a lightpush peer. With an empty
// peerID any connected peer serves the request.
func (e *Engine) LightpushPublish(messageJSON, pubsubTopic, peerID string, timeoutMs int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}
	if errPayload := e.lightpushReady(peerID); errPayload != "" {
		return errPayload
	}
	return e.publish(messageJSON, pubsubTopic)
}

// LightpushPublishEncryptAsymmetric is the asymmetric-encryption variant
// of LightpushPublish.
func (e *Engine) LightpushPublishEncryptAsymmetric(messageJSON, pubsubTopic, peerID, publicKeyHex, signingKeyHex string, timeoutMs int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}
	if errPayload := e.lightpushReady(peerID); errPayload != "" {
		return errPayload
	}

	sealed, errPayload := sealAsymmetric(messageJSON, publicKeyHex, signingKeyHex)
	if errPayload != "" {
		return errPayload
	}
	return e.publish(sealed, pubsubTopic)
}

// LightpushPublishEncryptSymmetric is the symmetric-encryption variant
// of LightpushPublish.
func (e *Engine) LightpushPublishEncryptSymmetric(messageJSON, pubsubTopic, peerID, symKeyHex, signingKeyHex string, timeoutMs int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if errPayload := e.requireRunning(); errPayload != "" {
		return errPayload
	}
	if errPayload := e.lightpushReady(peerID); errPayload != "" {
		return errPayload
	}

	sealed, errPayload := sealSymmetric(messageJSON, symKeyHex, signingKeyHex)
	if errPayload != "" {
		return errPayload
	}
	return e.publish(sealed, pubsubTopic)
}
