// Scheduling-progress notifications: an optional hook a Facade calls on
// every state transition, so an observer (the dashboard) can show a run
// in progress without polling.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
package schedule

// Notifier observes state transitions of scheduling runs. Notify must
// not block: a slow or stuck observer must never stall a run.
type Notifier interface {
	Notify(uniqueID uint32, state State)
}

// SetNotifier installs n as the Facade's progress observer. n may be
// nil, the default, in which case transitions are not reported anywhere.
func (f *Facade) SetNotifier(n Notifier) { f.notifier = n }

func (f *Facade) notify(uniqueID uint32, state State) {
	if f.notifier != nil {
		f.notifier.Notify(uniqueID, state)
	}
}
