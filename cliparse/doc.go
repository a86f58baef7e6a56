// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing.

Settings come from CLI flags with environment-variable fallbacks; main.go
loads a .env file first, so local development needs neither flags nor a
shell full of exports.

Required settings:

  - STORE_URL (-s): REST root, Postgres DSN, or sqlite path
    (defaults to plan.db for the sqlite backend)
  - STORE_KEY (--store-key): API key, rest backend only
  - AUTH_URL (--auth-url): auth provider base URL
  - AUTH_KEY (--auth-key): auth provider anon key

Optional settings:

  - PORT (-p): server port (default: 3271)
  - STORE_BACKEND (-b): rest, postgres, or sqlite (default: sqlite)
  - RANGE_DAYS (--days): visible range length (default: 28)
  - --warn / --bad: availability classification thresholds
    (defaults: 0 and -4 hours)
*/
package cliparse
