package stubapi

// seed data for local development; ids are stable so scripted demos can
// reference them

func seedUsers() []map[string]any {
	return []map[string]any{
		{
			"id": 1, "email": "admin@recruitflow.local", "first_name": "Laura",
			"last_name": "Méndez", "role": "admin", "is_active": true,
		},
		{
			"id": 2, "email": "reclutador@recruitflow.local", "first_name": "Diego",
			"last_name": "Fuentes", "role": "recruiter", "is_active": true,
		},
	}
}

func seedCandidates() []map[string]any {
	return []map[string]any{
		{
			"id": 1, "first_name": "Ana", "last_name": "Rojas",
			"email": "ana.rojas@example.com", "phone": "+56 9 1234 5678",
			"current_position": "Backend Engineer", "status": "qualified",
			"skills": []string{"Go", "PostgreSQL", "Docker"}, "assigned_to": 2,
			"created_at": "2026-06-01T09:00:00Z", "updated_at": "2026-06-15T14:30:00Z",
		},
		{
			"id": 2, "first_name": "Marcos", "last_name": "Pineda",
			"email": "marcos.pineda@example.com", "phone": "+56 9 8765 4321",
			"current_position": "Data Analyst", "status": "screening",
			"skills": []string{"Python", "SQL"}, "assigned_to": 2,
			"created_at": "2026-06-10T11:00:00Z", "updated_at": "2026-06-10T11:00:00Z",
		},
		{
			"id": 3, "first_name": "Carla", "last_name": "Soto",
			"email": "carla.soto@example.com", "phone": "+56 9 5555 0134",
			"current_position": "Frontend Developer", "status": "new",
			"skills": []string{"TypeScript", "React"}, "assigned_to": 1,
			"created_at": "2026-07-02T16:20:00Z", "updated_at": "2026-07-02T16:20:00Z",
		},
	}
}

func seedProcesses() []map[string]any {
	return []map[string]any{
		{
			"id": 1, "position_title": "Backend Engineer Senior", "client": 1,
			"status": "in_progress", "priority": "high", "is_remote": true,
			"salary_min": 3200000, "salary_max": 4500000, "salary_currency": "CLP",
			"created_at": "2026-05-20T10:00:00Z",
		},
		{
			"id": 2, "position_title": "Data Analyst", "client": 2,
			"status": "in_evaluation", "priority": "medium", "is_remote": false,
			"salary_min": 1800000, "salary_max": 2400000, "salary_currency": "CLP",
			"created_at": "2026-06-05T12:00:00Z",
		},
	}
}

func seedClients() []map[string]any {
	return []map[string]any{
		{"id": 1, "name": "Nortec SpA", "industry": "technology", "status": "active"},
		{"id": 2, "name": "Banco Austral", "industry": "finance", "status": "active"},
	}
}

func seedNotifications() []map[string]any {
	return []map[string]any{
		{
			"id": 1, "type": "candidate_updated", "title": "Candidato actualizado",
			"message": "Ana Rojas pasó a calificado", "is_read": false,
			"created_at": "2026-08-28T09:15:00Z",
		},
		{
			"id": 2, "type": "notification", "title": "Nueva evaluación",
			"message": "Evaluación pendiente para Marcos Pineda", "is_read": false,
			"created_at": "2026-08-29T17:40:00Z",
		},
	}
}
