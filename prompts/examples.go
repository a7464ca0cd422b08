package prompts

const Examples = `EXAMPLES:

PROMPT: Get the number of messages in the database
RESPONSE:
Here is the total.
@@
title("Message Count")
count = db.summary()["message_count"]
metric("Total Messages", count)
write("There are %d messages in the database." % count)
@@

PROMPT: How many messages have I sent to brett@bartlett.com?
RESPONSE:
Counting messages addressed to brett@bartlett.com.
@@
target = "brett@bartlett.com"
title("Messages to " + target)
count = db.query_one("SELECT COUNT(*) FROM messages WHERE to_email = ?", target)[0]
metric("Total Messages", count)
write("You've sent %d messages to %s." % (count, target))
@@

PROMPT: Show me a list of all emails from John
RESPONSE:
These are the messages from John, newest first.
@@
title("Emails from John")
rows = db.query("SELECT id, timestamp, from_email, from_name, subject FROM messages WHERE from_name LIKE '%John%' OR from_email LIKE '%john%' ORDER BY timestamp DESC")
if not rows:
    info("No emails found from John.")
else:
    write("Found %d emails from John" % len(rows))
    table(rows, columns = ["ID", "Date", "Email", "Name", "Subject"])
@@

PROMPT: Who sends me the most email?
RESPONSE:
@@
title("Top Senders")
rows = db.query_dicts("SELECT from_email, COUNT(*) AS n FROM messages GROUP BY from_email ORDER BY n DESC LIMIT 10")
table([[r["from_email"], r["n"]] for r in rows], columns = ["Sender", "Messages"])
@@
`
