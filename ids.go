// Identifiers shared across the scheduling core
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.

package league

// TeamID identifies a team, stable within one scheduling run.
type TeamID int32

// FieldID identifies a field.
type FieldID int32

// RegionID identifies a region. Regions are independent subproblems.
type RegionID int32

// ConflictID identifies a coach-conflict clique.
type ConflictID int32
